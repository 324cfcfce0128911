package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorErrAddsErrorAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	l.ErrorErr("scoring failed", errors.New("boom"), "lecture_id", "42")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "scoring failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "42", entry["lecture_id"])
}

func TestNewPicksLevelByEnv(t *testing.T) {
	assert.True(t, New(envLocal).logger.Enabled(context.Background(), slog.LevelDebug))
	assert.False(t, New(envProd).logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() { l.Info("ignored", "k", "v") })
}
