package errors

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LogHandler is an ErrorHandler that writes structured zerolog events.
type LogHandler struct {
	// Verbose includes stack traces.
	Verbose bool

	logger zerolog.Logger
}

// NewLogHandler returns a handler writing to logger. A nil logger selects a
// human-readable console writer on stderr.
func NewLogHandler(logger *zerolog.Logger) *LogHandler {
	if logger != nil {
		return &LogHandler{logger: *logger}
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return &LogHandler{logger: zerolog.New(console).With().Timestamp().Logger()}
}

// HandleError logs a SwipeError.
func (h *LogHandler) HandleError(err *SwipeError) {
	if err == nil {
		return
	}
	event := h.logger.Error().
		Str("op", err.Op).
		Stringer("kind", err.Kind).
		Err(err.Err)
	if err.Key != "" {
		event = event.Str("key", err.Key)
	}
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("swipe error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	event := h.logger.Error().Interface("value", err.Value)
	if err.Op != "" {
		event = event.Str("op", err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		event = event.Str("stack", err.StackTrace)
	}
	event.Msg("swipe panic")
}
