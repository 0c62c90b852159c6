package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/analyze"
	"github.com/fwojciec/pagelens/gemini"
	"github.com/fwojciec/pagelens/goldmark"
	"github.com/fwojciec/pagelens/goquery"
	plhttp "github.com/fwojciec/pagelens/http"
	plslog "github.com/fwojciec/pagelens/slog"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env file is not an error; the environment may be set
	// directly.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Analyzer replaces the Gemini-backed pipeline when set. Used by tests.
	Analyzer pagelens.Analyzer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run parses args, wires the pipeline and runs the analysis.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagelens"),
		kong.Description("Review the UI or UX of a web page with an LLM."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no URL specified. Run 'pagelens --help' for usage")
	}
	for _, a := range args {
		if a == "--help" || a == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = plslog.NewLogger(stderr, cli.Verbose)

	deps.Analyzer = m.Analyzer
	if deps.Analyzer == nil {
		analyzer, err := newAnalyzer(ctx, cli, deps.Logger)
		if err != nil {
			if pagelens.ErrorCode(err) == pagelens.ECONFIG {
				fmt.Fprintln(stderr, "Hint: set LLM_API_KEY in the environment or in a .env file. Get a key at https://aistudio.google.com/apikey")
			}
			return err
		}
		deps.Analyzer = analyzer
	}

	return kongCtx.Run(deps)
}

// newAnalyzer wires the production pipeline from the parsed configuration.
func newAnalyzer(ctx context.Context, cli *CLI, logger *slog.Logger) (*analyze.Analyzer, error) {
	client, err := gemini.NewClient(ctx, cli.APIKey)
	if err != nil {
		return nil, err
	}

	completer := gemini.NewCompleter(client, gemini.Config{
		Model:       cli.Model,
		Temperature: cli.Temperature,
		MaxTokens:   cli.MaxTokens,
	})
	querier := analyze.NewQuerier(plslog.NewLoggingCompleter(completer, logger), logger)

	a := &analyze.Analyzer{
		Fetcher:   plslog.NewLoggingFetcher(plhttp.NewFetcher(plhttp.WithTimeout(cli.Timeout)), logger),
		Extractor: plslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		Querier:   querier,
		Formatter: goldmark.NewFormatter(),
		Logger:    logger,
	}

	if cli.CountTokens {
		tc, err := gemini.NewTokenCounter(cli.Model)
		if err != nil {
			// Token counts are informational only.
			logger.Warn("token counting disabled", "err", err)
		} else {
			a.TokenCounter = tc
		}
	}

	return a, nil
}
