// Package gemini implements the model calls on top of Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/pagelens"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds the generation settings sent with every request.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int32
}

// DefaultConfig returns the generation settings used by both front ends.
func DefaultConfig() Config {
	return Config{
		Model:       DefaultModel,
		Temperature: 0.7,
		MaxTokens:   4000,
	}
}

// Ensure Completer implements pagelens.Completer at compile time.
var _ pagelens.Completer = (*Completer)(nil)

// Completer implements pagelens.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	config Config
}

// NewClient creates a Gemini API client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	if apiKey == "" {
		return nil, pagelens.Errorf(pagelens.ECONFIG, "LLM_API_KEY is not set")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// NewCompleter creates a new Completer. Zero fields in config fall back to
// DefaultConfig.
func NewCompleter(client *genai.Client, config Config) *Completer {
	def := DefaultConfig()
	if config.Model == "" {
		config.Model = def.Model
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = def.MaxTokens
	}
	return &Completer{client: client, config: config}
}

// Complete sends userContent to the model with systemPrompt as the system
// instruction and returns the generated text.
func (c *Completer) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	if c.client == nil {
		return "", pagelens.Errorf(pagelens.ECONFIG, "gemini client not configured")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.config.Model,
		[]*genai.Content{genai.NewContentFromText(userContent, genai.RoleUser)},
		BuildConfig(c.config, systemPrompt),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", pagelens.Errorf(pagelens.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for a single review request.
func BuildConfig(config Config, systemPrompt string) *genai.GenerateContentConfig {
	temp := config.Temperature
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		Temperature:     &temp,
		MaxOutputTokens: config.MaxTokens,
	}
}
