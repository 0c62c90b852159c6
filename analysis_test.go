package pagelens_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/pagelens"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts http and https URLs", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"http://example.com", "https://example.com/landing?x=1"} {
			req := &pagelens.Request{URL: u, Mode: pagelens.ModeUI}
			assert.NoError(t, req.Validate(), u)
		}
	})

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()

		req := &pagelens.Request{URL: "  ", Mode: pagelens.ModeUI}
		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
		assert.Equal(t, "URL required", pagelens.ErrorMessage(err))
	})

	t.Run("rejects relative and non-http URLs", func(t *testing.T) {
		t.Parallel()

		for _, u := range []string{"example.com", "/landing", "ftp://example.com", "mailto:a@b.c"} {
			req := &pagelens.Request{URL: u, Mode: pagelens.ModeUI}
			err := req.Validate()
			require.Error(t, err, u)
			assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
		}
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		req := &pagelens.Request{URL: "https://example.com", Mode: "seo"}
		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, pagelens.EINVALID, pagelens.ErrorCode(err))
	})
}

func TestResult_Analyses(t *testing.T) {
	t.Parallel()

	ui := &pagelens.Analysis{Mode: pagelens.ModeUI, Text: "ui"}
	ux := &pagelens.Analysis{Mode: pagelens.ModeUX, Text: "ux"}

	assert.Equal(t, []*pagelens.Analysis{ui, ux}, (&pagelens.Result{UX: ux, UI: ui}).Analyses())
	assert.Equal(t, []*pagelens.Analysis{ux}, (&pagelens.Result{UX: ux}).Analyses())
	assert.Empty(t, (&pagelens.Result{}).Analyses())
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	t.Run("nil when all analyses succeed", func(t *testing.T) {
		t.Parallel()

		r := &pagelens.Result{UI: &pagelens.Analysis{}, UX: &pagelens.Analysis{}}
		assert.NoError(t, r.Err())
	})

	t.Run("returns failed analysis error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		r := &pagelens.Result{UI: &pagelens.Analysis{Text: "ok"}, UX: &pagelens.Analysis{Err: boom}}
		assert.Equal(t, boom, r.Err())
	})
}
