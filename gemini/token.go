package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/pagelens"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ pagelens.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens locally with the Gemini tokenizer, without an
// API call.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given model. An empty
// model selects DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, pagelens.Errorf(pagelens.ECONFIG, "tokenizer for %s: %w", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the tokens text uses as a single user turn.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, err
	}

	return int(result.TotalTokens), nil
}
