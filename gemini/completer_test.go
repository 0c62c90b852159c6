package gemini_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagelens"
	"github.com/fwojciec/pagelens/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	config := gemini.DefaultConfig()

	assert.Equal(t, "gemini-2.5-flash", config.Model)
	assert.InDelta(t, 0.7, config.Temperature, 0.001)
	assert.Equal(t, int32(4000), config.MaxTokens)
}

func TestBuildConfig_SetsSystemInstruction(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig(gemini.DefaultConfig(), pagelens.UXPrompt)

	require.NotNil(t, config.SystemInstruction)
	require.Len(t, config.SystemInstruction.Parts, 1)
	assert.Equal(t, pagelens.UXPrompt, config.SystemInstruction.Parts[0].Text)
}

func TestBuildConfig_SetsGenerationLimits(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig(gemini.Config{Model: "m", Temperature: 0.2, MaxTokens: 512}, "prompt")

	require.NotNil(t, config.Temperature)
	assert.InDelta(t, 0.2, *config.Temperature, 0.001)
	assert.Equal(t, int32(512), config.MaxOutputTokens)
}

func TestBuildConfig_ZeroTemperatureIsSent(t *testing.T) {
	t.Parallel()

	config := gemini.BuildConfig(gemini.Config{}, "prompt")

	require.NotNil(t, config.Temperature)
	assert.Zero(t, *config.Temperature)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewClient(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, pagelens.ECONFIG, pagelens.ErrorCode(err))
}

func TestCompleter_Complete_RequiresClient(t *testing.T) {
	t.Parallel()

	c := gemini.NewCompleter(nil, gemini.Config{})

	_, err := c.Complete(context.Background(), pagelens.UIPrompt, "content")

	require.Error(t, err)
	assert.Equal(t, pagelens.ECONFIG, pagelens.ErrorCode(err))
}
