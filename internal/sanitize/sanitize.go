// Package sanitize strips markup from feed text before it is scored.
package sanitize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// dropped elements contribute no text
var dropped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Iframe:   true,
}

// block elements are separated from their neighbours by a space
var block = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Figure: true, atom.Footer: true, atom.H1: true,
	atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true,
	atom.Ol: true, atom.P: true, atom.Pre: true, atom.Section: true, atom.Table: true,
	atom.Td: true, atom.Th: true, atom.Tr: true, atom.Ul: true,
}

// Sanitizer removes markup from a string
type Sanitizer interface {
	Clean(s string) string
}

// HTML is a Sanitizer for HTML fragments
type HTML struct{}

// Clean returns the text of s with tags removed and entities decoded.
// Text without markup is returned unchanged.
func (HTML) Clean(s string) string {
	return Clean(s)
}

// Clean returns the text of s with tags removed and entities decoded
func Clean(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}

	var b strings.Builder
	for _, n := range doc.Find("body").Nodes {
		writeText(&b, n)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if dropped[n.DataAtom] {
			return
		}
	}

	isBlock := n.Type == html.ElementNode && block[n.DataAtom]
	if isBlock {
		separate(b)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if isBlock {
		separate(b)
	}
}

func separate(b *strings.Builder) {
	if b.Len() == 0 {
		return
	}
	if s := b.String(); !strings.HasSuffix(s, " ") {
		b.WriteByte(' ')
	}
}
