package logging

import (
	"io"
	"os"
	"time"

	"github.com/andrasnagy-data/careeradvisor/internal/shared/config"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a zerolog logger with pretty console output for development or JSON output for production.
// The sentry writer is nil outside production.
func NewLogger(cfg *config.Config) (zerolog.Logger, *sentryzerolog.Writer) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		// Default to info level if parsing fails
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	fileWriter := newFileWriter(cfg.LogFile)

	if !cfg.IsEnvProd() {
		return newConsoleLogger(fileWriter), nil
	}

	sentryWriter, err := sentryzerolog.New(sentryzerolog.Config{
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
			WithBreadcrumbs: true,
			FlushTimeout:    3 * time.Second,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Sentry writer, using console only")
		return newConsoleLogger(fileWriter), nil
	}

	writers := []io.Writer{os.Stderr, sentryWriter}
	if fileWriter != nil {
		writers = append(writers, fileWriter)
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Caller().
		Str("version", cfg.Version).
		Str("environment", cfg.Environment).
		Logger(), sentryWriter
}

func newConsoleLogger(fileWriter io.Writer) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	if fileWriter != nil {
		out = zerolog.MultiLevelWriter(out, fileWriter)
	}
	return zerolog.New(out).
		With().
		Timestamp().
		Caller().
		Logger()
}

// newFileWriter returns a rotating JSON log file, or nil when path is empty.
func newFileWriter(path string) io.Writer {
	if path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
}
