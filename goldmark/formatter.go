// Package goldmark formats model responses for display, rendering prose
// with the goldmark Markdown renderer.
package goldmark

import (
	"bytes"
	"strings"

	"github.com/fwojciec/pagelens"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Ensure Formatter implements pagelens.Formatter at compile time.
var _ pagelens.Formatter = (*Formatter)(nil)

// Formatter implements pagelens.Formatter.
//
// Raw HTML in model output is not passed through; goldmark omits it unless
// the renderer is configured as unsafe.
type Formatter struct {
	md goldmark.Markdown
}

// NewFormatter creates a Formatter with GitHub Flavored Markdown enabled.
func NewFormatter() *Formatter {
	return &Formatter{
		md: goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Format splits text into display blocks for the given review mode.
func (f *Formatter) Format(text string, mode pagelens.Mode) ([]pagelens.Block, error) {
	switch mode {
	case pagelens.ModeUI:
		if strings.TrimSpace(text) == "" {
			return nil, nil
		}
		html, err := f.render(text)
		if err != nil {
			return nil, err
		}
		return []pagelens.Block{{Kind: pagelens.BlockProse, Markdown: text, HTML: html}}, nil
	case pagelens.ModeUX:
		blocks := pagelens.ScanBlocks(text)
		for i := range blocks {
			if blocks[i].Kind != pagelens.BlockProse {
				continue
			}
			html, err := f.render(blocks[i].Markdown)
			if err != nil {
				return nil, err
			}
			blocks[i].HTML = html
		}
		return blocks, nil
	}
	return nil, pagelens.Errorf(pagelens.EINVALID, "cannot format response for mode %q", mode)
}

// render converts Markdown to an HTML fragment.
func (f *Formatter) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := f.md.Convert([]byte(markdown), &buf); err != nil {
		return "", pagelens.Errorf(pagelens.EINTERNAL, "render markdown: %w", err)
	}
	return buf.String(), nil
}
