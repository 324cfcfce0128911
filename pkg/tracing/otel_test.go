package tracing

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
)

func TestClampRatio(t *testing.T) {
	assert.Equal(t, 0.0, clampRatio(-1))
	assert.Equal(t, 0.25, clampRatio(0.25))
	assert.Equal(t, 1.0, clampRatio(3))
}

func TestInitExportsSampledSpans(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	shutdown, err := Init(ctx, &buf, Config{ServiceName: "courses-test", Environment: "test", SampleRatio: 1})
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(ctx, "score-submission")
	span.End()

	require.NoError(t, shutdown(ctx))
	assert.Contains(t, buf.String(), "score-submission")
	assert.Contains(t, buf.String(), "courses-test")
}
