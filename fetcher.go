package pagelens

import "context"

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch downloads the page at url and returns its body.
	// Returns EFETCH on transport failures and non-2xx responses.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)
}
