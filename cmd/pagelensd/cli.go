package main

import "time"

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Addr           string        `env:"PAGELENS_ADDR" default:":8080" help:"Address to listen on"`
	Rate           float64       `default:"6" help:"Analysis requests per minute per client IP"`
	Burst          int           `default:"3" help:"Analysis request burst per client IP"`
	RequestTimeout time.Duration `default:"3m" help:"Timeout for a whole analysis request"`
	FetchTimeout   time.Duration `default:"30s" help:"Timeout for fetching a page"`
	Verbose        bool          `short:"v" help:"Enable debug logging"`

	APIKey      string  `name:"api-key" env:"LLM_API_KEY" help:"Gemini API key"`
	Model       string  `env:"MODEL_NAME" default:"gemini-2.5-flash" help:"Gemini model"`
	Temperature float32 `env:"TEMPERATURE" default:"0.7" help:"Sampling temperature"`
	MaxTokens   int32   `env:"MAX_TOKENS" default:"4000" help:"Maximum tokens per response"`
}
