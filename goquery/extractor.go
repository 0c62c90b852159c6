// Package goquery implements pagelens.Extractor using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagelens"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagelens.Extractor at compile time.
var _ pagelens.Extractor = (*Extractor)(nil)

// removedSelector matches elements that never contribute visible page text.
const removedSelector = "header, nav, footer, aside, script, style"

// textTags are the elements whose direct text is collected.
var textTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "span": true, "div": true, "a": true, "button": true,
}

// Extractor collects the visible text of a page.
//
// Only elements whose sole child is a text node contribute a line. Text
// nested under mixed content is missed, but no line is ever emitted twice
// for a parent and its child.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses rawHTML and returns its visible text.
func (e *Extractor) Extract(rawHTML string) (*pagelens.Document, error) {
	// The HTML5 parser always synthesizes a body, so look for a real one
	// in the markup itself.
	if !hasBodyTag(rawHTML) {
		return nil, pagelens.Errorf(pagelens.ENOCONTENT, "no body element found")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, pagelens.Errorf(pagelens.ENOCONTENT, "failed to parse HTML: %v", err)
	}

	removeInvisible(doc)

	result := &pagelens.Document{}

	if title := doc.Find("title").First(); title.Length() > 0 {
		result.Title = strings.TrimSpace(title.Text())
	}

	if meta := doc.Find(`meta[name="description"]`).First(); meta.Length() > 0 {
		content, _ := meta.Attr("content")
		result.MetaDescription = strings.TrimSpace(content)
	}

	body := doc.Find("body").First()

	body.Find("*").Each(func(_ int, sel *goquery.Selection) {
		if !textTags[goquery.NodeName(sel)] {
			return
		}
		if text, ok := directText(sel.Get(0)); ok {
			result.Lines = append(result.Lines, text)
		}
	})

	body.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt, _ := sel.Attr("alt")
		if alt = strings.TrimSpace(alt); alt != "" {
			result.Lines = append(result.Lines, pagelens.ImageLabel+alt)
		}
	})

	return result, nil
}

// removeInvisible drops page chrome, scripts, styles and hidden elements.
func removeInvisible(doc *goquery.Document) {
	doc.Find(removedSelector).Remove()
	doc.Find("[hidden]").Remove()
	doc.Find("[style]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		style, _ := sel.Attr("style")
		return isHiddenStyle(style)
	}).Remove()
}

// isHiddenStyle reports whether an inline style hides its element.
// Whitespace is ignored, so "display : none" matches.
func isHiddenStyle(style string) bool {
	compact := strings.ToLower(strings.Join(strings.Fields(style), ""))
	return strings.Contains(compact, "display:none")
}

// directText returns the trimmed text of n when its only child is a
// non-blank text node.
func directText(n *html.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	c := n.FirstChild
	if c == nil || c.NextSibling != nil || c.Type != html.TextNode {
		return "", false
	}
	text := strings.TrimSpace(c.Data)
	return text, text != ""
}

// hasBodyTag reports whether the markup contains a <body> start tag.
func hasBodyTag(rawHTML string) bool {
	z := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "body" {
				return true
			}
		}
	}
}
