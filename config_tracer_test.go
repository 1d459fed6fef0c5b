package teapot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestTracerConfigValidateAndDefault(t *testing.T) {
	assert.NoError(t, (&TracerConfig{}).ValidateAndDefault())
	assert.NoError(t, (&TracerConfig{Enabled: true, CollectorEndpoint: "localhost:4317"}).ValidateAndDefault())
	assert.Error(t, (&TracerConfig{Enabled: true}).ValidateAndDefault())

	settings := &Settings{Tracer: TracerConfig{Enabled: true}}
	err := settings.ValidateAndDefault()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tracer")
}

func TestInitTracer(t *testing.T) {
	ctx := context.Background()

	t.Run("Disabled", func(t *testing.T) {
		shutdown, err := InitTracer(ctx, TracerConfig{})
		require.NoError(t, err)
		assert.NoError(t, shutdown(ctx))
	})
	t.Run("Enabled", func(t *testing.T) {
		shutdown, err := InitTracer(ctx, TracerConfig{
			Enabled:           true,
			CollectorEndpoint: "localhost:4317",
			Insecure:          true,
		})
		require.NoError(t, err)
		require.NotNil(t, shutdown)
		t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

		shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		_ = shutdown(shutdownCtx)
	})
}
