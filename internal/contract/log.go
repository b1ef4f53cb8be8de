package contract

import (
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"
)

var (
	logLevel = new(slog.LevelVar)
	logger   atomic.Pointer[slog.Logger]
)

func init() {
	logLevel.Set(slog.LevelWarn)
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))
}

// Logger returns the process-wide structured logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// SetLogger replaces the process-wide logger. Tests use it to capture output.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// SetVerbose lowers the log level to debug when enabled.
func SetVerbose(verbose bool) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
		return
	}
	logLevel.Set(slog.LevelWarn)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	Logger().Warn(msg, slog.Any("error", err))
}
