package extract

import (
	"strings"

	"golang.org/x/net/html"
)

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Prettify renders n back to markup with every tag and every non-blank text
// node on its own line. Text and attribute values are escaped so the only
// angle brackets in the output belong to tags.
func Prettify(n *html.Node) string {
	var b strings.Builder
	writePretty(&b, n, 0)
	return b.String()
}

func writePretty(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(" ", depth)
	switch n.Type {
	case html.TextNode:
		t := strings.TrimSpace(n.Data)
		if t == "" {
			return
		}
		b.WriteString(indent)
		b.WriteString(textEscaper.Replace(t))
		b.WriteByte('\n')
	case html.CommentNode:
		b.WriteString(indent)
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->\n")
	case html.ElementNode:
		b.WriteString(indent)
		b.WriteByte('<')
		b.WriteString(n.Data)
		for _, a := range n.Attr {
			b.WriteByte(' ')
			b.WriteString(a.Key)
			b.WriteString(`="`)
			b.WriteString(attrEscaper.Replace(a.Val))
			b.WriteByte('"')
		}
		if voidElements[n.Data] {
			b.WriteString("/>\n")
			return
		}
		b.WriteString(">\n")
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(b, c, depth+1)
		}
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(n.Data)
		b.WriteString(">\n")
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writePretty(b, c, depth)
		}
	}
}
