package prometheus

import (
	"context"
	"time"

	"github.com/fwojciec/pagelens"
)

// Ensure InstrumentedFetcher implements pagelens.Fetcher.
var _ pagelens.Fetcher = (*InstrumentedFetcher)(nil)

// InstrumentedFetcher counts and times fetches.
type InstrumentedFetcher struct {
	next    pagelens.Fetcher
	metrics *Metrics
}

// NewInstrumentedFetcher creates a new InstrumentedFetcher.
func NewInstrumentedFetcher(next pagelens.Fetcher, metrics *Metrics) *InstrumentedFetcher {
	return &InstrumentedFetcher{next: next, metrics: metrics}
}

// Fetch delegates to the wrapped fetcher.
func (f *InstrumentedFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.metrics.FetchDuration.Observe(time.Since(begin).Seconds())
		f.metrics.FetchesTotal.WithLabelValues(code(err)).Inc()
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Ensure InstrumentedCompleter implements pagelens.Completer.
var _ pagelens.Completer = (*InstrumentedCompleter)(nil)

// InstrumentedCompleter counts and times model calls. Each retry is a
// separate call.
type InstrumentedCompleter struct {
	next    pagelens.Completer
	metrics *Metrics
}

// NewInstrumentedCompleter creates a new InstrumentedCompleter.
func NewInstrumentedCompleter(next pagelens.Completer, metrics *Metrics) *InstrumentedCompleter {
	return &InstrumentedCompleter{next: next, metrics: metrics}
}

// Complete delegates to the wrapped completer.
func (c *InstrumentedCompleter) Complete(ctx context.Context, systemPrompt, userContent string) (text string, err error) {
	defer func(begin time.Time) {
		c.metrics.CompletionDuration.Observe(time.Since(begin).Seconds())
		c.metrics.CompletionsTotal.WithLabelValues(code(err)).Inc()
	}(time.Now())
	return c.next.Complete(ctx, systemPrompt, userContent)
}

// Ensure InstrumentedAnalyzer implements pagelens.Analyzer.
var _ pagelens.Analyzer = (*InstrumentedAnalyzer)(nil)

// InstrumentedAnalyzer counts review outcomes per mode. Requests that fail
// before any review runs are counted under every requested mode.
type InstrumentedAnalyzer struct {
	next    pagelens.Analyzer
	metrics *Metrics
}

// NewInstrumentedAnalyzer creates a new InstrumentedAnalyzer.
func NewInstrumentedAnalyzer(next pagelens.Analyzer, metrics *Metrics) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{next: next, metrics: metrics}
}

// Analyze delegates to the wrapped analyzer.
func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, req *pagelens.Request) (*pagelens.Result, error) {
	res, err := a.next.Analyze(ctx, req)
	if err != nil {
		if req != nil && req.Mode.Valid() {
			for _, mode := range req.Mode.Modes() {
				a.metrics.AnalysesTotal.WithLabelValues(string(mode), code(err)).Inc()
			}
		}
		return nil, err
	}
	a.metrics.ObserveResult(res)
	return res, nil
}
