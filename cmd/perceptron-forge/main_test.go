package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"perceptron-forge/internal/config"
	"perceptron-forge/internal/dataset"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunOnceRendersSurface(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 17
	cfg.Render = true
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	require.NoError(t, runOnce(context.Background(), &out, cfg, dataset.Builtin(), quiet, 0))

	text := out.String()
	assert.Contains(t, text, "step 1 error=")
	assert.Contains(t, text, "Converged.")
	assert.Contains(t, text, "O")
}

func TestRunSweep(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 5
	cfg.IterationCap = 200
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	require.NoError(t, runSweep(context.Background(), &out, cfg, dataset.Builtin(), quiet))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "DATASET"))
	assert.Contains(t, out.String(), "xor")
	assert.Contains(t, out.String(), "multilayer")
}

func TestRunSweepStopsOnBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Eta = -1

	var out bytes.Buffer
	assert.Error(t, runSweep(context.Background(), &out, cfg, dataset.Builtin(), quiet))
}
