package utils

import (
	"io"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
var logFile *os.File

// InitLogger routes log output to logPath when set, otherwise stderr. The
// TUI owns the terminal, so interactive commands should pass a file.
func InitLogger(debug bool, logPath string) error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		CloseLogger()
		logFile = f
		out = f
	}

	logger = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	return nil
}

// DiscardLogs silences all output.
func DiscardLogs() {
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func Logger() *slog.Logger { return logger }

func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

func Info(msg string, args ...any) { logger.Info(msg, args...) }

func Warn(msg string, args ...any) { logger.Warn(msg, args...) }

func Error(msg string, args ...any) { logger.Error(msg, args...) }
