package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	logDir      = "logs"
	logFileName = "typecast.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging returns a file logger in debug mode and a disabled logger otherwise
// The terminal owns stdout and stderr, so logs never go there
func setupLogging(debug bool, level zerolog.Level) (*os.File, zerolog.Logger) {
	if !debug {
		return nil, zerolog.New(io.Discard).Level(zerolog.Disabled)
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, zerolog.New(io.Discard).Level(zerolog.Disabled)
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("typecast-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, zerolog.New(io.Discard).Level(zerolog.Disabled)
	}

	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return f, logger
}
