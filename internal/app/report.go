package app

import (
	"fmt"
	"strings"

	"github.com/hyperifyio/sitetext/internal/site"
)

// renderReport formats profiles as Markdown, one section per site.
func renderReport(profiles []site.Profile) string {
	var b strings.Builder
	b.WriteString("# Site text report\n")
	for _, p := range profiles {
		b.WriteString("\n## ")
		b.WriteString(p.URL)
		b.WriteString("\n")
		if p.Title != "" {
			b.WriteString("\nTitle: ")
			b.WriteString(p.Title)
			b.WriteString("\n")
		}
		writePage(&b, "Home", p.Home)
		writePage(&b, "About", p.About)
		writePage(&b, "Products", p.Product)
	}
	return b.String()
}

func writePage(b *strings.Builder, heading string, pg site.Page) {
	b.WriteString("\n### ")
	b.WriteString(heading)
	if pg.URL != "" {
		b.WriteString(" (")
		b.WriteString(pg.URL)
		b.WriteString(")")
	}
	b.WriteString("\n\n")
	switch {
	case !pg.Found:
		b.WriteString("_not found_\n")
	case strings.TrimSpace(pg.Text) == "":
		b.WriteString("_no text above the minimum length_\n")
	default:
		b.WriteString(pg.Text)
		b.WriteString("\n")
	}
}

// appendFooter records the settings a run depended on.
func appendFooter(markdown string, profiles []site.Profile, httpCacheActive bool) string {
	var about, product int
	for _, p := range profiles {
		if p.About.Found {
			about++
		}
		if p.Product.Found {
			product++
		}
	}
	return markdown + fmt.Sprintf("\n---\nsitetext %s (%s); sites=%d; about_found=%d; product_found=%d; http_cache=%t\n",
		BuildVersion, BuildCommit, len(profiles), about, product, httpCacheActive)
}
