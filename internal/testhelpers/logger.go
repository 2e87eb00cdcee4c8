package testhelpers

import (
	"io"
	"log/slog"

	"github.com/skypiea-tech/heronfit-recommendation-service/internal/logging"
)

// NewLogger creates a debug-level test logger writing to the given sink,
// typically a testhelpers.Writer.
func NewLogger(logSink io.Writer) *slog.Logger {
	handler := logging.NewContextHandler(slog.NewTextHandler(logSink, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	return slog.New(handler)
}
