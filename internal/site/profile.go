package site

import (
	"context"

	"github.com/hyperifyio/sitetext/internal/extract"
)

// Page is the outcome of one discovery. Found is false for the sentinel.
type Page struct {
	URL   string
	Text  string
	Found bool
}

// Profile gathers all three pages of a site.
type Profile struct {
	URL     string
	Title   string
	Home    Page
	About   Page
	Product Page
}

// Profile runs homepage, About and Products extraction for home, sharing one
// memo so the homepage is fetched once.
func (f *Finder) Profile(ctx context.Context, home string) Profile {
	c := f.scoped()
	p := Profile{URL: home}

	homeEx := f.extractor(c, f.HomeMinParagraphLen)
	if doc, ok := homeEx.Document(ctx, home); ok {
		p.Title = extract.Title(doc)
		p.Home = Page{
			URL:   home,
			Text:  extract.Join(extract.FromDocument(doc, f.Tags, f.HomeMinParagraphLen)),
			Found: true,
		}
	}

	pageEx := f.extractor(c, f.PageMinParagraphLen)
	if u, ok := f.locate(ctx, c, home, f.About); ok {
		text, ok := pageEx.Text(ctx, u)
		p.About = Page{URL: u, Text: text, Found: ok}
	}
	if u, ok := f.locate(ctx, c, home, f.Product); ok {
		text, ok := pageEx.Text(ctx, u)
		p.Product = Page{URL: u, Text: text, Found: ok}
	}
	return p
}
