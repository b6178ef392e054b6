package cache

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func homepage(url, body string) *Page {
	return &Page{URL: url, StatusCode: http.StatusOK, ContentType: "text/html", Body: []byte(body)}
}

func TestPageStore_SaveAndLoad(t *testing.T) {
	t.Parallel()
	s := &PageStore{Dir: t.TempDir()}
	url := "https://example.com/about"
	want := Validators{ETag: `"v1"`, LastModified: "Mon, 02 Jan 2006 15:04:05 GMT"}
	if err := s.Save(context.Background(), homepage(url, "<p>hi</p>"), want); err != nil {
		t.Fatalf("save: %v", err)
	}
	v, err := s.Validators(context.Background(), url)
	if err != nil {
		t.Fatalf("validators: %v", err)
	}
	if v != want {
		t.Fatalf("validators = %+v, want %+v", v, want)
	}
	p, err := s.Load(context.Background(), url)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.URL != url || p.StatusCode != http.StatusOK || p.ContentType != "text/html" || string(p.Body) != "<p>hi</p>" {
		t.Fatalf("unexpected page: %+v", p)
	}
}

func TestPageStore_RefusesNonOK(t *testing.T) {
	t.Parallel()
	s := &PageStore{Dir: t.TempDir()}
	p := homepage("https://example.com/missing", "gone")
	p.StatusCode = http.StatusNotFound
	if err := s.Save(context.Background(), p, Validators{ETag: "x"}); !errors.Is(err, ErrNotStored) {
		t.Fatalf("expected ErrNotStored, got %v", err)
	}
	if _, err := s.Load(context.Background(), p.URL); err == nil {
		t.Fatalf("404 page should not be stored")
	}
}

func TestPageStore_MissingEntry(t *testing.T) {
	t.Parallel()
	s := &PageStore{Dir: t.TempDir()}
	if _, err := s.Validators(context.Background(), "https://example.com/none"); err == nil {
		t.Fatalf("expected error for missing entry")
	}
}

func TestPageStore_NoDir(t *testing.T) {
	t.Parallel()
	s := &PageStore{}
	if err := s.Save(context.Background(), homepage("https://example.com/", ""), Validators{}); err == nil {
		t.Fatalf("expected error without dir")
	}
}

func TestPageStore_StrictPerms(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "pages")
	s := &PageStore{Dir: dir, StrictPerms: true}
	url := "https://example.com/x"
	if err := s.Save(context.Background(), homepage(url, "hello"), Validators{ETag: "etag"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("stat dir: %v", err)
	}
	if got := info.Mode() & 0o777; got != 0o700 {
		t.Fatalf("dir mode = %o, want 0700", got)
	}
	metaPath, bodyPath := s.paths(url)
	for _, f := range []string{bodyPath, metaPath} {
		fi, err := os.Stat(f)
		if err != nil {
			t.Fatalf("stat %s: %v", f, err)
		}
		if got := fi.Mode() & 0o777; got != 0o600 {
			t.Fatalf("%s mode = %o, want 0600", f, got)
		}
	}
}

func TestPurgeStale(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s := &PageStore{Dir: dir}
	if err := s.Save(context.Background(), homepage("https://a.com/", "a"), Validators{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	removed, err := PurgeStale(dir, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if _, err := s.Load(context.Background(), "https://a.com/"); err == nil {
		t.Fatalf("expected page removed")
	}
}

func TestPurgeStale_DisabledWhenZero(t *testing.T) {
	t.Parallel()
	removed, err := PurgeStale(t.TempDir(), 0)
	if err != nil || removed != 0 {
		t.Fatalf("expected no-op, got %d %v", removed, err)
	}
}

func TestClearDir(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "x.body"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := ClearDir(dir); err != nil {
		t.Fatalf("clear: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty dir, got %d entries", len(entries))
	}
	if err := ClearDir("  "); err == nil {
		t.Fatalf("expected error for empty dir")
	}
}
