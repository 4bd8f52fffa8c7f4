package errors

import (
	"sync"

	"go.uber.org/zap"
)

var (
	fallbackOnce   sync.Once
	fallbackLogger *zap.Logger
)

// defaultLogger returns a development logger writing to stderr. If zap
// cannot build one, diagnostics are discarded.
func defaultLogger() *zap.Logger {
	fallbackOnce.Do(func() {
		l, err := zap.NewDevelopment(zap.AddCallerSkip(2))
		if err != nil {
			l = zap.NewNop()
		}
		fallbackLogger = l.Named("reactivity")
	})
	return fallbackLogger
}

// LogHandler is an ErrorHandler that writes diagnostics to a zap logger.
type LogHandler struct {
	// Logger receives the entries. Nil uses a development logger on stderr.
	Logger *zap.Logger
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

func (h *LogHandler) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return defaultLogger()
}

// HandleError logs a ReactiveError as a warning.
func (h *LogHandler) HandleError(err *ReactiveError) {
	if err == nil {
		return
	}
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.Stringer("kind", err.Kind),
	}
	if err.Target != "" {
		fields = append(fields, zap.String("target", err.Target))
	}
	if err.Err != nil {
		fields = append(fields, zap.Error(err.Err))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Warn("reactivity diagnostic", fields...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	fields := []zap.Field{zap.Any("value", err.Value)}
	if err.Op != "" {
		fields = append(fields, zap.String("op", err.Op))
	}
	if h.Verbose && err.StackTrace != "" {
		fields = append(fields, zap.String("stack", err.StackTrace))
	}
	h.logger().Error("reactivity panic", fields...)
}
