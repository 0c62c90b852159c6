package main_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/pagelens"
	main "github.com/fwojciec/pagelens/cmd/pagelens"
	"github.com/fwojciec/pagelens/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain_Run_HelpShowsUsage(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	help := stdout.String()
	assert.Contains(t, help, "Usage:")
	assert.Contains(t, help, "--mode")
	assert.Contains(t, help, "--count-tokens")
	assert.Contains(t, help, "LLM_API_KEY")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	err := main.NewMain().Run(context.Background(), nil, &bytes.Buffer{}, &bytes.Buffer{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no URL specified")
}

func TestMain_Run_MissingAPIKey(t *testing.T) {
	t.Parallel()

	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"https://acme.test", "--api-key="}, &bytes.Buffer{}, stderr)

	require.Error(t, err)
	assert.Equal(t, pagelens.ECONFIG, pagelens.ErrorCode(err))
	assert.Contains(t, stderr.String(), "LLM_API_KEY")
}

func TestMain_Run_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("prints each review under its title", func(t *testing.T) {
		t.Parallel()

		var got *pagelens.Request
		m := main.NewMain()
		m.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, req *pagelens.Request) (*pagelens.Result, error) {
				got = req
				return &pagelens.Result{
					UI: &pagelens.Analysis{Mode: pagelens.ModeUI, Text: "Hero is too tall."},
					UX: &pagelens.Analysis{Mode: pagelens.ModeUX, Text: "Pros:\n**Speed**: fast"},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"https://acme.test", "--mode", "ALL"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "https://acme.test", got.URL)
		assert.Equal(t, pagelens.ModeBoth, got.Mode)
		out := stdout.String()
		assert.Contains(t, out, "==================================================\nUI Analysis\n==================================================\nHero is too tall.\n")
		assert.Contains(t, out, "UX Analysis\n==================================================\nPros:\n**Speed**: fast\n")
		assert.Less(t, bytes.Index(stdout.Bytes(), []byte("UI Analysis")), bytes.Index(stdout.Bytes(), []byte("UX Analysis")))
	})

	t.Run("defaults to ui mode", func(t *testing.T) {
		t.Parallel()

		var mode pagelens.Mode
		m := main.NewMain()
		m.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(_ context.Context, req *pagelens.Request) (*pagelens.Result, error) {
				mode = req.Mode
				return &pagelens.Result{UI: &pagelens.Analysis{Mode: pagelens.ModeUI}}, nil
			},
		}

		err := m.Run(context.Background(), []string{"https://acme.test"}, &bytes.Buffer{}, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Equal(t, pagelens.ModeUI, mode)
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Analyzer = &mock.Analyzer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"https://acme.test", "-m", "layout"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "layout")
	})

	t.Run("reports pipeline failure with user message", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(context.Context, *pagelens.Request) (*pagelens.Result, error) {
				return nil, pagelens.Errorf(pagelens.EFETCH, "unexpected status 404")
			},
		}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"https://acme.test"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, pagelens.EFETCH, pagelens.ErrorCode(err))
		assert.Contains(t, stderr.String(), "Could not retrieve site content.")
	})

	t.Run("fails when one review fails but prints the other", func(t *testing.T) {
		t.Parallel()

		llmErr := pagelens.Errorf(pagelens.ELLM, "model call failed (attempts=3)")
		m := main.NewMain()
		m.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(context.Context, *pagelens.Request) (*pagelens.Result, error) {
				return &pagelens.Result{
					UI: &pagelens.Analysis{Mode: pagelens.ModeUI, Text: "Looks good."},
					UX: &pagelens.Analysis{Mode: pagelens.ModeUX, Err: llmErr},
				}, nil
			},
		}
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"https://acme.test", "--mode=both"}, stdout, stderr)

		require.ErrorIs(t, err, llmErr)
		assert.Contains(t, stdout.String(), "Looks good.")
		assert.Contains(t, stderr.String(), "UX Analysis: The analysis service failed to respond.")
	})

	t.Run("returns context error when interrupted", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		m := main.NewMain()
		m.Analyzer = &mock.Analyzer{
			AnalyzeFn: func(ctx context.Context, _ *pagelens.Request) (*pagelens.Result, error) {
				cancel()
				return nil, ctx.Err()
			},
		}
		stderr := &bytes.Buffer{}

		err := m.Run(ctx, []string{"https://acme.test"}, &bytes.Buffer{}, stderr)

		require.True(t, errors.Is(err, context.Canceled))
		assert.Contains(t, stderr.String(), "interrupted")
	})
}
