package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/analyze"
	"github.com/fwojciec/pagelens/chi"
	"github.com/fwojciec/pagelens/gemini"
	"github.com/fwojciec/pagelens/goldmark"
	"github.com/fwojciec/pagelens/goquery"
	plhttp "github.com/fwojciec/pagelens/http"
	plprom "github.com/fwojciec/pagelens/prometheus"
	plslog "github.com/fwojciec/pagelens/slog"
	"github.com/joho/godotenv"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 15 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
	if m.Server == nil {
		return // help
	}

	<-ctx.Done()

	if err := m.Close(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Analyzer replaces the Gemini-backed pipeline when set. Used by tests.
	Analyzer pagelens.Analyzer

	// Server is set once Run has started listening.
	Server *chi.Server

	Metrics *plprom.Metrics
	Logger  *slog.Logger
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Run parses args, wires the pipeline and starts the HTTP server. It
// returns once the server is listening; call Close to stop it.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagelensd"),
		kong.Description("Serve the pagelens web form."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	for _, a := range args {
		if a == "--help" || a == "-h" {
			_, _ = parser.Parse([]string{"--help"})
			return nil
		}
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	m.Logger = plslog.NewLogger(stderr, cli.Verbose)
	m.Metrics = plprom.NewMetrics()

	analyzer := m.Analyzer
	if analyzer == nil {
		a, err := newAnalyzer(ctx, cli, m.Logger, m.Metrics)
		if err != nil {
			if pagelens.ErrorCode(err) == pagelens.ECONFIG {
				fmt.Fprintln(stderr, "Hint: set LLM_API_KEY in the environment or in a .env file. Get a key at https://aistudio.google.com/apikey")
			}
			return err
		}
		analyzer = a
	}

	server := chi.NewServer(plprom.NewInstrumentedAnalyzer(analyzer, m.Metrics), chi.Config{
		Addr:           cli.Addr,
		RequestTimeout: cli.RequestTimeout,
		RatePerMinute:  cli.Rate,
		Burst:          cli.Burst,
	}, m.Logger)
	server.Metrics = m.Metrics

	if err := server.Open(); err != nil {
		return err
	}
	m.Server = server
	return nil
}

// Close gracefully stops the server.
func (m *Main) Close() error {
	if m.Server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	m.Logger.Info("shutting down")
	return m.Server.Close(ctx)
}

// newAnalyzer wires the production pipeline with logging and metrics.
func newAnalyzer(ctx context.Context, cli *CLI, logger *slog.Logger, metrics *plprom.Metrics) (*analyze.Analyzer, error) {
	client, err := gemini.NewClient(ctx, cli.APIKey)
	if err != nil {
		return nil, err
	}

	var completer pagelens.Completer = gemini.NewCompleter(client, gemini.Config{
		Model:       cli.Model,
		Temperature: cli.Temperature,
		MaxTokens:   cli.MaxTokens,
	})
	completer = plprom.NewInstrumentedCompleter(completer, metrics)
	completer = plslog.NewLoggingCompleter(completer, logger)

	var fetcher pagelens.Fetcher = plhttp.NewFetcher(plhttp.WithTimeout(cli.FetchTimeout))
	fetcher = plprom.NewInstrumentedFetcher(fetcher, metrics)
	fetcher = plslog.NewLoggingFetcher(fetcher, logger)

	return &analyze.Analyzer{
		Fetcher:   fetcher,
		Extractor: plslog.NewLoggingExtractor(goquery.NewExtractor(), logger),
		Querier:   analyze.NewQuerier(completer, logger),
		Formatter: goldmark.NewFormatter(),
		Logger:    logger,
	}, nil
}
