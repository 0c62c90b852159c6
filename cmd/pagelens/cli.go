package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pagelens"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Analyzer pagelens.Analyzer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `arg:"" help:"Page to analyze"`
	Mode        string        `short:"m" default:"ui" help:"Review to run: ui, ux or both"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Timeout for fetching the page"`
	CountTokens bool          `help:"Log the size of the extracted text in tokens"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`

	APIKey      string  `name:"api-key" env:"LLM_API_KEY" help:"Gemini API key"`
	Model       string  `env:"MODEL_NAME" default:"gemini-2.5-flash" help:"Gemini model"`
	Temperature float32 `env:"TEMPERATURE" default:"0.7" help:"Sampling temperature"`
	MaxTokens   int32   `env:"MAX_TOKENS" default:"4000" help:"Maximum tokens per response"`
}

// separator frames each review in the output.
const separator = "=================================================="
