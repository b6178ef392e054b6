package cache

import "sync"

// Page is a fetched response as remembered by a Memo.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Entry is a remembered fetch outcome; exactly one of Page and Err is set.
type Entry struct {
	Page *Page
	Err  error
}

// Memo remembers fetch outcomes, failures included, for the lifetime of a
// single discovery call. It is never shared between calls.
type Memo struct {
	mu      sync.Mutex
	entries map[string]Entry
}

// NewMemo returns an empty memo.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string]Entry)}
}

// Load returns the remembered outcome for url.
func (m *Memo) Load(url string) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[url]
	return e, ok
}

// Store records the outcome of fetching url.
func (m *Memo) Store(url string, page *Page, err error) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.entries == nil {
		m.entries = make(map[string]Entry)
	}
	m.entries[url] = Entry{Page: page, Err: err}
}

// Len reports how many URLs are remembered.
func (m *Memo) Len() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
