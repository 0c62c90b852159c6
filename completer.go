package pagelens

import (
	"context"
	"unicode"
)

// Completer sends a single system and user message pair to a language model.
type Completer interface {
	// Complete returns the model's text for the conversation.
	// An empty completion is returned as "" with a nil error.
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// InsufficientContentMessage is returned by Querier implementations in place
// of a model response when the page text is too short to review.
const InsufficientContentMessage = "Error: not enough content could be retrieved from the site for analysis."

// MinContentLength is the minimum number of non-whitespace characters needed
// before a page is sent to the model.
const MinContentLength = 10

// Querier asks the model to review page content with a system prompt.
type Querier interface {
	// Query returns the model's review of content.
	// Content shorter than MinContentLength yields InsufficientContentMessage
	// without contacting the model. Returns ELLM once retries are exhausted.
	Query(ctx context.Context, systemPrompt, content string) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// HasSufficientContent reports whether content has at least MinContentLength
// non-whitespace characters.
func HasSufficientContent(content string) bool {
	n := 0
	for _, r := range content {
		if !unicode.IsSpace(r) {
			n++
			if n >= MinContentLength {
				return true
			}
		}
	}
	return false
}
