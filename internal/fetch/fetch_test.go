package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hyperifyio/sitetext/internal/cache"
)

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(200)
		_, _ = w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 2 * time.Second}
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 || resp.ContentType == "" || string(resp.Body) == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGet_NonOKIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := &Client{}
	resp, err := c.Get(context.Background(), srv.URL+"/missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGet_NoRetryOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(502)
	}))
	defer srv.Close()

	c := &Client{}
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 502 {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one request, got %d", n)
	}
}

func TestGet_RejectsNonHTTP(t *testing.T) {
	c := &Client{PerRequestTimeout: time.Second}
	_, err := c.Get(context.Background(), "file:///etc/hosts")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Fatalf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestGet_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := &Client{PerRequestTimeout: 50 * time.Millisecond}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestGet_RedirectCap(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/loop", http.StatusFound)
	}))
	defer srv.Close()

	c := &Client{RedirectMaxHops: 3}
	if _, err := c.Get(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected redirect loop error")
	}
}

func TestGet_SendsUserAgentOnlyWhenSet(t *testing.T) {
	var got atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Store(r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	c := &Client{UserAgent: "sitetext-test"}
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("get: %v", err)
	}
	if ua := got.Load().(string); ua != "sitetext-test" {
		t.Fatalf("expected custom UA, got %q", ua)
	}
}

func TestGet_Conditional304_UsesCache(t *testing.T) {
	var calls int32
	etag := `"abc123"`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "text/html")
		if n == 1 {
			w.Header().Set("ETag", etag)
			_, _ = w.Write([]byte("first"))
			return
		}
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		_, _ = w.Write([]byte("unexpected"))
	}))
	defer srv.Close()

	c := &Client{Cache: &cache.PageStore{Dir: t.TempDir()}}
	r1, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("first get error: %v", err)
	}
	if string(r1.Body) != "first" {
		t.Fatalf("unexpected body1: %q", r1.Body)
	}
	r2, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("second get error: %v", err)
	}
	if r2.StatusCode != 200 || string(r2.Body) != "first" || r2.ContentType != "text/html" {
		t.Fatalf("expected cached body with 200, got %d %q", r2.StatusCode, r2.Body)
	}
}

func TestGet_MemoCollapsesRepeatedFetches(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte("home"))
	}))
	defer srv.Close()

	base := &Client{}
	c := base.WithMemo(cache.NewMemo())
	for i := 0; i < 3; i++ {
		if _, err := c.Get(context.Background(), srv.URL); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected 1 request through memo, got %d", n)
	}
	// The unscoped client has no memo.
	if _, err := base.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("base get: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected base client to fetch again, got %d", n)
	}
}

func TestAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			_, _ = w.Write([]byte("ok"))
		case "/moved":
			http.Redirect(w, r, "/", http.StatusMovedPermanently)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := &Client{}
	cases := []struct {
		url  string
		want bool
	}{
		{srv.URL + "/", true},
		{srv.URL + "/moved", true},
		{srv.URL + "/gone", false},
		{srv.URL + "/nope", false},
		{"http://127.0.0.1:1/", false},
		{"::not a url", false},
		{"ftp://example.com/", false},
	}
	for _, tc := range cases {
		if got := c.Available(context.Background(), tc.url); got != tc.want {
			t.Errorf("Available(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}
