// Package logging configures the global zerolog logger for zooctl.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tordrt/zoodb/internal/config"
)

const (
	DefaultMaxSizeMB  = 20
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// Level maps a -v count onto a level name. Zero keeps configured.
func Level(verbosity int, configured string) string {
	switch {
	case verbosity >= 2:
		return "trace"
	case verbosity == 1:
		return "debug"
	case configured != "":
		return configured
	default:
		return "info"
	}
}

// Apply sets the global level and points the global logger at out, plus a
// rotating file when cfg.File is set
func Apply(level string, cfg config.LogConfig, out io.Writer) {
	applyLevel(level)

	console := zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	log.Logger = zerolog.New(console).With().Timestamp().Logger()

	if cfg.File == "" {
		return
	}
	if err := ensureLogDir(cfg.File); err != nil {
		log.Error().Err(err).Str("path", cfg.File).Msg("Failed to prepare log directory; logging to console only")
		return
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    orDefault(cfg.MaxSizeMB, DefaultMaxSizeMB),
		MaxBackups: orDefault(cfg.MaxBackups, DefaultMaxBackups),
		MaxAge:     orDefault(cfg.MaxAgeDays, DefaultMaxAgeDays),
	}
	multi := zerolog.MultiLevelWriter(console, fileWriter)
	log.Logger = zerolog.New(multi).With().Timestamp().Logger()
}

func applyLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
