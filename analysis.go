package pagelens

import (
	"context"
	"net/url"
	"strings"
)

// Request asks for a review of a single page.
type Request struct {
	URL  string `json:"url"`
	Mode Mode   `json:"mode"`
}

// Validate returns an error if the request contains invalid fields.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.URL) == "" {
		return Errorf(EINVALID, "URL required")
	}
	u, err := url.Parse(r.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Errorf(EINVALID, "invalid URL %q: must be an absolute http(s) URL", r.URL)
	}
	if !r.Mode.Valid() {
		return Errorf(EINVALID, "unknown mode %q", r.Mode)
	}
	return nil
}

// Analysis holds the outcome of one review mode.
type Analysis struct {
	Mode Mode

	// Text is the raw model response.
	Text string

	// Blocks is Text formatted for display.
	Blocks []Block

	// Err is set when the review failed. Text and Blocks are empty then.
	Err error
}

// Result holds the reviews produced for a Request. A failed mode does not
// discard the other one.
type Result struct {
	ID       string
	URL      string
	Mode     Mode
	Document *Document

	// UI and UX are nil when the mode was not requested.
	UI *Analysis
	UX *Analysis
}

// Analyses returns the requested analyses in display order.
func (r *Result) Analyses() []*Analysis {
	var a []*Analysis
	if r.UI != nil {
		a = append(a, r.UI)
	}
	if r.UX != nil {
		a = append(a, r.UX)
	}
	return a
}

// Err returns the first error among the analyses, or nil.
func (r *Result) Err() error {
	for _, a := range r.Analyses() {
		if a.Err != nil {
			return a.Err
		}
	}
	return nil
}

// Analyzer runs the complete review pipeline for a page.
type Analyzer interface {
	// Analyze fetches and extracts the page, then runs every review the
	// request's mode selects. Fetch and extraction failures are returned
	// as errors (EFETCH, ENOCONTENT); review failures are reported on the
	// corresponding Analysis.
	Analyze(ctx context.Context, req *Request) (*Result, error)
}
