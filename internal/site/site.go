package site

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/sitetext/internal/cache"
	"github.com/hyperifyio/sitetext/internal/discover"
	"github.com/hyperifyio/sitetext/internal/extract"
	"github.com/hyperifyio/sitetext/internal/fetch"
)

// DefaultHomeMinParagraphLen is the minimum paragraph length on homepages.
const DefaultHomeMinParagraphLen = 20

// Finder locates and extracts the homepage, About page and Products page of a
// site. A Finder holds no per-site state and may be shared.
type Finder struct {
	Client  *fetch.Client
	About   discover.Variant
	Product discover.Variant
	// HomeMinParagraphLen and PageMinParagraphLen bound kept paragraphs on
	// the homepage and on discovered pages respectively.
	HomeMinParagraphLen int
	PageMinParagraphLen int
	Tags                []string
}

// New returns a Finder with the default variants and limits.
func New(c *fetch.Client) *Finder {
	return &Finder{
		Client:              c,
		About:               discover.About,
		Product:             discover.Product,
		HomeMinParagraphLen: DefaultHomeMinParagraphLen,
		PageMinParagraphLen: extract.DefaultMinParagraphLen,
		Tags:                extract.DefaultTags,
	}
}

// scoped returns a client whose fetches are remembered for one call only.
func (f *Finder) scoped() *fetch.Client {
	return f.Client.WithMemo(cache.NewMemo())
}

func (f *Finder) extractor(c *fetch.Client, minLen int) *extract.Extractor {
	return &extract.Extractor{Client: c, MinParagraphLen: minLen, Tags: f.Tags}
}

// HomePage returns the plain text of home itself.
func (f *Finder) HomePage(ctx context.Context, home string) (string, bool) {
	return f.extractor(f.Client, f.HomeMinParagraphLen).Text(ctx, home)
}

// AboutPage finds the About page of home and returns its plain text.
func (f *Finder) AboutPage(ctx context.Context, home string) (string, bool) {
	c := f.scoped()
	u, ok := f.locate(ctx, c, home, f.About)
	if !ok {
		return "", false
	}
	return f.extractor(c, f.PageMinParagraphLen).Text(ctx, u)
}

// ProductPage finds the Products/Services page of home and returns its plain
// text.
func (f *Finder) ProductPage(ctx context.Context, home string) (string, bool) {
	c := f.scoped()
	u, ok := f.locate(ctx, c, home, f.Product)
	if !ok {
		return "", false
	}
	return f.extractor(c, f.PageMinParagraphLen).Text(ctx, u)
}

// AboutURL returns the discovered About page URL without extracting it.
func (f *Finder) AboutURL(ctx context.Context, home string) (string, bool) {
	return f.locate(ctx, f.scoped(), home, f.About)
}

// ProductURL returns the discovered Products page URL without extracting it.
func (f *Finder) ProductURL(ctx context.Context, home string) (string, bool) {
	return f.locate(ctx, f.scoped(), home, f.Product)
}

// locate guesses suffixes first and falls back to scanning homepage anchors.
func (f *Finder) locate(ctx context.Context, c *fetch.Client, home string, v discover.Variant) (string, bool) {
	if u, ok := discover.Guess(ctx, c, home, v); ok {
		return u, true
	}
	if u, ok := discover.Match(ctx, c, home, v); ok {
		return u, true
	}
	log.Info().Str("url", home).Str("page", v.Name).Msg("page not found")
	return "", false
}
