package pagelens

import "strings"

// Labels prefixed to the lines of a Document's text.
const (
	TitleLabel           = "Page title: "
	MetaDescriptionLabel = "Meta description: "
	ImageLabel           = "Image: "
)

// Document is the visible text extracted from a single page.
// An empty field means the page did not provide it.
type Document struct {
	Title           string
	MetaDescription string

	// Lines holds visible text in document order followed by image
	// descriptions prefixed with ImageLabel.
	Lines []string
}

// IsEmpty reports whether no text was collected from the page.
func (d *Document) IsEmpty() bool {
	return d == nil || (d.Title == "" && d.MetaDescription == "" && len(d.Lines) == 0)
}

// Text returns the document as newline separated plain text for the model.
func (d *Document) Text() string {
	if d == nil {
		return ""
	}

	parts := make([]string, 0, len(d.Lines)+2)
	if d.Title != "" {
		parts = append(parts, TitleLabel+d.Title)
	}
	if d.MetaDescription != "" {
		parts = append(parts, MetaDescriptionLabel+d.MetaDescription)
	}
	parts = append(parts, d.Lines...)

	return strings.Join(parts, "\n")
}
