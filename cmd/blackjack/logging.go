package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
		Prefix:          "blackjack",
	})
}

// newFileLogger logs to path so the shared terminal only shows the game.
// The returned func closes the file.
func newFileLogger(path string, level log.Level) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := newLogger(f, level)
	return logger, func() {
		if err := f.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}, nil
}
