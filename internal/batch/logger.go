// Package batch drives files through the classification pipeline one at a
// time and collects the run report.
package batch

import (
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/wolfvue/wolfvue-go/internal/logging"
)

// Package-level logger for batch operations
var (
	logger         *slog.Logger
	loggerInitOnce sync.Once
	levelVar       = new(slog.LevelVar)
	closeLogger    func() error
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "batch.log")
	levelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "batch", levelVar)
	if err != nil {
		// Fallback: log the failure and keep a disabled handler so callers
		// never see a nil logger.
		log.Printf("Failed to initialize batch file logger at %s: %v. Using console logging.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: levelVar})
		logger = slog.New(fbHandler).With("service", "batch")
		closeLogger = func() error { return nil }
	}
}

// GetLogger returns the package logger for use by collaborating packages.
func GetLogger() *slog.Logger {
	loggerInitOnce.Do(func() {
		if logger == nil {
			logger = slog.Default().With("service", "batch")
		}
	})
	return logger
}

// CloseLogger closes the log file and releases resources
func CloseLogger() error {
	if closeLogger != nil {
		return closeLogger()
	}
	return nil
}
