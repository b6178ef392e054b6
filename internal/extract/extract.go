package extract

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html/charset"

	"github.com/hyperifyio/sitetext/internal/fetch"
)

// DefaultMinParagraphLen is the minimum paragraph length for About and
// Product pages. A paragraph must be strictly longer to be kept.
const DefaultMinParagraphLen = 100

// DefaultTags are the elements whose text is extracted.
var DefaultTags = []string{"p", "h1", "h2"}

// Paragraph is the stripped text of one matched element.
type Paragraph struct {
	Tag  string
	Text string
}

// Extractor fetches pages and reduces them to plain-text paragraphs.
type Extractor struct {
	Client          *fetch.Client
	MinParagraphLen int
	Tags            []string
}

// New returns an Extractor with the default minimum length and tags.
func New(c *fetch.Client) *Extractor {
	return &Extractor{Client: c, MinParagraphLen: DefaultMinParagraphLen, Tags: DefaultTags}
}

// WithMinParagraphLen returns a copy of e using n as the minimum length.
func (e *Extractor) WithMinParagraphLen(n int) *Extractor {
	cp := *e
	cp.MinParagraphLen = n
	return &cp
}

// Text returns the kept paragraphs of url joined by newlines. ok is false when
// the page cannot be fetched, does not answer 200, or cannot be parsed. A page
// with no paragraph above the minimum yields "" with ok true.
func (e *Extractor) Text(ctx context.Context, url string) (string, bool) {
	paras, ok := e.Paragraphs(ctx, url)
	if !ok {
		return "", false
	}
	return Join(paras), true
}

// Paragraphs is Text without the final join.
func (e *Extractor) Paragraphs(ctx context.Context, url string) ([]Paragraph, bool) {
	doc, ok := e.Document(ctx, url)
	if !ok {
		return nil, false
	}
	return FromDocument(doc, e.Tags, e.MinParagraphLen), true
}

// Document fetches and parses url without cleaning it, for callers that need
// structured access to the page.
func (e *Extractor) Document(ctx context.Context, url string) (*goquery.Document, bool) {
	resp, err := e.Client.Get(ctx, url)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("extract fetch failed")
		return nil, false
	}
	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("extract fetch failed")
		return nil, false
	}
	doc, err := Parse(resp.Body, resp.ContentType)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("parse failed")
		return nil, false
	}
	return doc, true
}

// Parse decodes body to UTF-8 using the content type and any <meta> charset
// hint, then builds a document. Malformed markup is tolerated.
func Parse(body []byte, contentType string) (*goquery.Document, error) {
	var r io.Reader = bytes.NewReader(body)
	if dr, err := charset.NewReader(r, contentType); err == nil {
		r = dr
	} else {
		r = bytes.NewReader(body)
	}
	return goquery.NewDocumentFromReader(r)
}

// FromHTML parses UTF-8 markup and returns the kept paragraphs.
func FromHTML(body []byte, tags []string, minLen int) []Paragraph {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	return FromDocument(doc, tags, minLen)
}

// FromDocument renders every element named in tags, in document order, strips
// its markup and keeps the results longer than minLen characters.
func FromDocument(doc *goquery.Document, tags []string, minLen int) []Paragraph {
	sel := selector(tags)
	if sel == "" {
		return nil
	}
	var out []Paragraph
	doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
		node := s.Get(0)
		text := StripTags(Prettify(node))
		if utf8.RuneCountInString(text) <= minLen {
			return
		}
		out = append(out, Paragraph{Tag: node.Data, Text: text})
	})
	return out
}

// Join concatenates paragraph texts with newlines.
func Join(paras []Paragraph) string {
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text
	}
	return strings.Join(texts, "\n")
}

// Title returns the trimmed <title> text of doc.
func Title(doc *goquery.Document) string {
	return strings.TrimSpace(doc.Find("head title").First().Text())
}

func selector(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || strings.ContainsAny(t, " ,>+~:[]#.*()") {
			continue
		}
		parts = append(parts, t)
	}
	return strings.Join(parts, ", ")
}
