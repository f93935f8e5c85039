package pipeline

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements end a run of text; their content is separated from its neighbours.
var blockElements = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true, "dd": true,
	"div": true, "dl": true, "dt": true, "figcaption": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// StripHTML returns the visible text of an HTML fragment with whitespace
// collapsed. Block elements and line breaks become word boundaries. Text
// without markup is returned unchanged.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	var b strings.Builder
	writeText(&b, doc.Selection)
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(b *strings.Builder, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, c *goquery.Selection) {
		switch name := goquery.NodeName(c); name {
		case "#text":
			b.WriteString(c.Text())
		case "#comment", "script", "style", "head":
		default:
			block := blockElements[name]
			if block {
				b.WriteByte(' ')
			}
			writeText(b, c)
			if block {
				b.WriteByte(' ')
			}
		}
	})
}
