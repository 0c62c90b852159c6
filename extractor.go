package pagelens

// Extractor reduces raw HTML to the text a visitor would read.
type Extractor interface {
	// Extract parses html and returns its visible text.
	// Returns ENOCONTENT if the markup has no body element.
	// A page with a body but no text yields an empty Document and no error.
	Extract(html string) (*Document, error)
}
