package logger_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"mixed case level", "InFo"},
		{"invalid level falls back to info", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := logger.Setup(logger.Config{Level: tt.level})
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Same(t, log, slog.Default())
		})
	}
}

func TestFromContext(t *testing.T) {
	base := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithLogger(context.Background(), base)
	assert.Same(t, base, logger.FromContext(ctx))

	// Without a stored logger the default is returned.
	assert.Same(t, slog.Default(), logger.FromContext(context.Background()))
}

func TestFromContextOrDefault(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(os.Stderr, nil))
	fallback := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx := logger.WithLogger(context.Background(), stored)
	assert.Same(t, stored, logger.FromContextOrDefault(ctx, fallback))
	assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	assert.Same(t, slog.Default(), logger.FromContextOrDefault(context.Background(), nil))
}
