package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns attached logger", func(t *testing.T) {
		t.Parallel()
		log := slog.Default().With(slog.String("trace_id", "abc"))
		ctx := WithLogger(context.Background(), log)

		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, FromContext(context.Background()))
	})
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	fallback := slog.Default().With(slog.String("component", "test"))

	t.Run("context logger wins", func(t *testing.T) {
		t.Parallel()
		log := slog.Default().With(slog.String("trace_id", "abc"))
		ctx := WithLogger(context.Background(), log)

		assert.Same(t, log, FromContextOrDefault(ctx, fallback))
	})

	t.Run("fallback when context is bare", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("default when both are absent", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
	})
}
