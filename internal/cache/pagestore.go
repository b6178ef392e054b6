package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrNotStored is returned for pages the store will not keep.
var ErrNotStored = errors.New("only 200 pages are stored")

// Validators are the response headers a stored page is revalidated with.
type Validators struct {
	ETag         string `json:"etag"`
	LastModified string `json:"last_modified"`
}

// Empty reports whether there is nothing to send in a conditional GET.
func (v Validators) Empty() bool { return v.ETag == "" && v.LastModified == "" }

type pageMeta struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Validators
	SavedAt     time.Time `json:"saved_at"`
}

// PageStore keeps fetched homepages and candidate pages on disk between runs
// so a repeated run can revalidate them instead of downloading them again.
// Each page is <sha256(url)>.meta.json beside <sha256(url)>.body.
type PageStore struct {
	Dir string
	// StrictPerms restricts the store to 0700 dirs and 0600 files.
	StrictPerms bool
}

func (s *PageStore) modes() (dir, file os.FileMode) {
	if s.StrictPerms {
		return 0o700, 0o600
	}
	return 0o755, 0o644
}

func (s *PageStore) open() error {
	if s == nil || s.Dir == "" {
		return errors.New("page store dir not configured")
	}
	dirMode, _ := s.modes()
	if err := os.MkdirAll(s.Dir, dirMode); err != nil {
		return err
	}
	if s.StrictPerms {
		return os.Chmod(s.Dir, dirMode)
	}
	return nil
}

func (s *PageStore) paths(url string) (meta, body string) {
	h := sha256.Sum256([]byte(url))
	key := hex.EncodeToString(h[:])
	return filepath.Join(s.Dir, key+".meta.json"), filepath.Join(s.Dir, key+".body")
}

func (s *PageStore) meta(url string) (*pageMeta, error) {
	if err := s.open(); err != nil {
		return nil, err
	}
	metaPath, _ := s.paths(url)
	b, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}
	var m pageMeta
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", metaPath, err)
	}
	return &m, nil
}

// Validators returns the ETag and Last-Modified stored for url.
func (s *PageStore) Validators(_ context.Context, url string) (Validators, error) {
	m, err := s.meta(url)
	if err != nil {
		return Validators{}, err
	}
	return m.Validators, nil
}

// Load returns the stored copy of url as a 200 page.
func (s *PageStore) Load(_ context.Context, url string) (*Page, error) {
	m, err := s.meta(url)
	if err != nil {
		return nil, err
	}
	_, bodyPath := s.paths(url)
	body, err := os.ReadFile(bodyPath)
	if err != nil {
		return nil, err
	}
	return &Page{URL: url, StatusCode: http.StatusOK, ContentType: m.ContentType, Body: body}, nil
}

// Save stores p with its validators. The body is written before the meta
// file, and the meta file lands by rename, so Load never sees half a page.
func (s *PageStore) Save(_ context.Context, p *Page, v Validators) error {
	if p == nil || p.StatusCode != http.StatusOK {
		return ErrNotStored
	}
	if err := s.open(); err != nil {
		return err
	}
	_, fileMode := s.modes()
	metaPath, bodyPath := s.paths(p.URL)
	if err := os.WriteFile(bodyPath, p.Body, fileMode); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	b, err := json.Marshal(pageMeta{
		URL:         p.URL,
		ContentType: p.ContentType,
		Validators:  v,
		SavedAt:     time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	tmp := metaPath + ".tmp"
	if err := os.WriteFile(tmp, b, fileMode); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return os.Rename(tmp, metaPath)
}
