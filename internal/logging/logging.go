package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/BerylCAtieno/persona-insights/internal/config"
)

const logFileName = "insights.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds the process logger and installs it as the slog default. With LogDir set, records
// are also written to a rotated file; the returned Closer releases that file and must be closed on exit.
func NewLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	level := parseLevel(cfg.Level)
	dir := strings.TrimSpace(cfg.LogDir)
	if dir == "" {
		logger := slog.New(consoleHandler(os.Stdout, level, false))
		slog.SetDefault(logger)
		return logger, nopCloser{}, nil
	}

	file, err := rotatingFile(dir, cfg)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(consoleHandler(io.MultiWriter(os.Stdout, file), level, true))
	slog.SetDefault(logger)
	logger.Info("file_logging_enabled",
		"path", file.Filename,
		"max_size_mb", file.MaxSize,
		"max_backups", file.MaxBackups,
	)
	return logger, file, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func rotatingFile(dir string, cfg config.LoggingConfig) (*lumberjack.Logger, error) {
	if cfg.MaxSizeMB <= 0 || cfg.MaxBackups <= 0 || cfg.MaxAgeDays <= 0 {
		return nil, fmt.Errorf("invalid log rotation: size=%dMB backups=%d age=%dd",
			cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, logFileName),
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}, nil
}

func consoleHandler(w io.Writer, level slog.Level, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  time.RFC3339,
		AddSource:   true,
		NoColor:     noColor,
		ReplaceAttr: shortSource,
	})
}

// shortSource trims the source attribute to package/file.go:line.
func shortSource(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.SourceKey {
		return attr
	}
	src, ok := attr.Value.Any().(*slog.Source)
	if !ok || src == nil {
		return attr
	}
	file := filepath.Join(filepath.Base(filepath.Dir(src.File)), filepath.Base(src.File))
	return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, src.Line))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
