package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sitetext/internal/cache"
)

// DefaultTimeout bounds a single request when PerRequestTimeout is unset.
const DefaultTimeout = 10 * time.Second

// ErrUnsupportedScheme is returned for URLs that are not http or https.
var ErrUnsupportedScheme = errors.New("unsupported URL scheme")

// Response is a fetched page. Any status code is a valid response.
type Response = cache.Page

// Client wraps http.Client with a per-request timeout, a redirect cap, an
// optional on-disk cache and an optional per-call memo. It never retries.
type Client struct {
	HTTPClient *http.Client
	// UserAgent is sent only when non-empty.
	UserAgent string
	// PerRequestTimeout bounds each request. Zero means DefaultTimeout.
	PerRequestTimeout time.Duration
	// RedirectMaxHops caps redirect following. Zero means 10.
	RedirectMaxHops int
	// Optional on-disk cache for 200 bodies, revalidated with conditional GETs.
	Cache *cache.PageStore
	// If true, skip conditional headers but still save fresh responses.
	BypassCache bool

	memo *cache.Memo
}

// WithMemo returns a copy of c whose fetches are remembered in m. Each
// discovery call gets its own memo so repeated homepage fetches collapse.
func (c *Client) WithMemo(m *cache.Memo) *Client {
	cp := *c
	cp.memo = m
	return &cp
}

func (c *Client) timeout() time.Duration {
	if c.PerRequestTimeout > 0 {
		return c.PerRequestTimeout
	}
	return DefaultTimeout
}

func (c *Client) getHTTPClient() *http.Client {
	if c.HTTPClient != nil {
		// Clone to attach our redirect policy without mutating caller's client
		base := *c.HTTPClient
		base.CheckRedirect = c.checkRedirectFunc()
		return &base
	}
	return &http.Client{Timeout: c.timeout(), CheckRedirect: c.checkRedirectFunc()}
}

// Available reports whether rawURL answers a GET with status 200. Failures
// are logged and reported as false.
func (c *Client) Available(ctx context.Context, rawURL string) bool {
	resp, err := c.Get(ctx, rawURL)
	if err != nil {
		log.Warn().Err(err).Str("url", rawURL).Msg("page unavailable")
		return false
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", rawURL).Msg("page unavailable")
		return false
	}
	return true
}

// Get issues a single GET. Non-2xx statuses are returned as responses, not
// errors; only transport failures produce an error.
func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	if e, ok := c.memo.Load(rawURL); ok {
		log.Debug().Str("url", rawURL).Msg("memo hit")
		return e.Page, e.Err
	}
	resp, err := c.get(ctx, rawURL)
	c.memo.Store(rawURL, resp, err)
	return resp, err
}

func (c *Client) get(ctx context.Context, rawURL string) (*Response, error) {
	var stored cache.Validators
	if c.Cache != nil && !c.BypassCache {
		if v, err := c.Cache.Validators(ctx, rawURL); err == nil {
			stored = v
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	if !isHTTPScheme(req.URL) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, rawURL)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if stored.ETag != "" {
		req.Header.Set("If-None-Match", stored.ETag)
	}
	if stored.LastModified != "" {
		req.Header.Set("If-Modified-Since", stored.LastModified)
	}

	reqCtx, cancel := context.WithTimeout(req.Context(), c.timeout())
	defer cancel()
	req = req.WithContext(reqCtx)

	resp, err := c.getHTTPClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified && !stored.Empty() {
		if page, err := c.Cache.Load(ctx, rawURL); err == nil {
			log.Debug().Str("url", rawURL).Msg("cache revalidated")
			return page, nil
		}
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	page := &Response{URL: rawURL, StatusCode: resp.StatusCode, ContentType: resp.Header.Get("Content-Type"), Body: b}
	if c.Cache != nil && resp.StatusCode == http.StatusOK {
		v := cache.Validators{ETag: resp.Header.Get("ETag"), LastModified: resp.Header.Get("Last-Modified")}
		if err := c.Cache.Save(ctx, page, v); err != nil {
			log.Debug().Err(err).Str("url", rawURL).Msg("cache save failed")
		}
	}
	return page, nil
}

func (c *Client) checkRedirectFunc() func(req *http.Request, via []*http.Request) error {
	max := c.RedirectMaxHops
	if max <= 0 {
		max = 10
	}
	return func(req *http.Request, via []*http.Request) error {
		if len(via) >= max {
			return errors.New("too many redirects")
		}
		// Only allow http/https during redirects
		if !isHTTPScheme(req.URL) {
			return errors.New("redirect to unsupported scheme")
		}
		return nil
	}
}

func isHTTPScheme(u *url.URL) bool {
	if u == nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}
