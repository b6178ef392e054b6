package discover

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/hyperifyio/sitetext/internal/extract"
	"github.com/hyperifyio/sitetext/internal/fetch"
)

// Match fetches home and looks for an anchor labelled with one of
// v.AnchorTexts, then with v.PrefixFallback, returning its href resolved
// against home.
func Match(ctx context.Context, c *fetch.Client, home string, v Variant) (string, bool) {
	resp, err := c.Get(ctx, home)
	if err != nil {
		log.Warn().Err(err).Str("url", home).Msg("homepage unavailable")
		return "", false
	}
	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("url", home).Msg("homepage URL failed")
		return "", false
	}
	doc, err := extract.Parse(resp.Body, resp.ContentType)
	if err != nil {
		log.Warn().Err(err).Str("url", home).Msg("homepage parse failed")
		return "", false
	}
	u, ok := MatchDocument(doc, home, v)
	if ok {
		log.Debug().Str("url", u).Str("page", v.Name).Msg("matched anchor")
	}
	return u, ok
}

// MatchDocument runs the anchor search of Match over an already parsed page.
func MatchDocument(doc *goquery.Document, home string, v Variant) (string, bool) {
	anchors := doc.Find("a")
	for _, label := range v.AnchorTexts {
		want := v.label(label)
		a := firstAnchor(anchors, v, func(text string) bool { return text == want })
		if a == nil {
			continue
		}
		if u, ok := resolveHref(home, a); ok {
			return u, true
		}
		if !v.SkipBadHref {
			return "", false
		}
	}
	if v.PrefixFallback == "" {
		return "", false
	}
	prefix := v.label(v.PrefixFallback)
	a := firstAnchor(anchors, v, func(text string) bool { return strings.HasPrefix(text, prefix) })
	if a == nil {
		return "", false
	}
	return resolveHref(home, a)
}

func firstAnchor(anchors *goquery.Selection, v Variant, match func(string) bool) *goquery.Selection {
	var found *goquery.Selection
	anchors.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text, ok := soleString(s.Get(0))
		if ok && match(v.label(text)) {
			found = s
			return false
		}
		return true
	})
	return found
}

// label returns s as compared against anchor labels: verbatim, or NFKC
// normalised when the variant asks for it.
func (v Variant) label(s string) string {
	if v.NormalizeLabels {
		return norm.NFKC.String(s)
	}
	return s
}

// soleString returns the text of n when its only content is a single text
// node, possibly wrapped in single-child elements. Anchors with mixed content
// have no label.
func soleString(n *html.Node) (string, bool) {
	c := n.FirstChild
	if c == nil || c.NextSibling != nil {
		return "", false
	}
	switch c.Type {
	case html.TextNode:
		return c.Data, true
	case html.ElementNode:
		return soleString(c)
	}
	return "", false
}

func resolveHref(home string, a *goquery.Selection) (string, bool) {
	href, ok := a.Attr("href")
	if !ok {
		return "", false
	}
	base, err := url.Parse(home)
	if err != nil {
		return "", false
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	return base.ResolveReference(ref).String(), true
}
