package common

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingEnabled controls whether Logf produces output.
var LoggingEnabled = true

var logger = newConsoleLogger().Sugar()

// newConsoleLogger builds a bare console logger: message only, no
// timestamp or caller.
func newConsoleLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.LevelKey = ""
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.StacktraceKey = ""
	cfg.OutputPaths = []string{"stdout"}
	return zap.Must(cfg.Build())
}

// SetLogger replaces the logger behind Logf.
func SetLogger(l *zap.Logger) {
	logger = l.Sugar()
}

// Logf logs a formatted message if logging is enabled.
func Logf(format string, args ...interface{}) {
	if LoggingEnabled {
		logger.Infof(strings.TrimSuffix(format, "\n"), args...)
	}
}

// formatDuration formats a duration with 2 decimal places.
// Returns a string like "1.23 ms" (no padding).
func formatDuration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)

	// Handle durations >= 1 second
	if ms >= 1000 {
		sec := ms / 1000
		return fmt.Sprintf("%.2f s", sec)
	} else if ms < 0.01 {
		// Sub-0.01 ms: show in microseconds
		us := ms * 1000
		return fmt.Sprintf("%.2f us", us)
	}
	// Everything else in milliseconds with 2 decimal places
	return fmt.Sprintf("%.2f ms", ms)
}

// LogDuration logs a message with the elapsed time since start.
// The duration is formatted with tight parens and right-padded to align messages.
func LogDuration(start time.Time, format string, args ...interface{}) {
	elapsed := time.Since(start)
	msg := fmt.Sprintf(format, args...)
	durStr := fmt.Sprintf("(%s)", formatDuration(elapsed))
	Logf("%-10s%s", durStr, msg)
}
