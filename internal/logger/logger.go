package logger

import (
	"os"
	"strings"
	"time"

	"github.com/jordangarrison/aws-tools/internal/config"
	"github.com/rs/zerolog"
)

// SetupLogger builds the console logger shared by both tools. Log output is
// the primary user interface of these commands, so it goes to stdout.
func SetupLogger(tool string, cfg *config.LoggingConfig) zerolog.Logger {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}

	levelStr := strings.ToLower(cfg.Level)
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)

	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(consoleWriter).
		With().
		Timestamp().
		Str("tool", tool).
		Logger()

	return logger
}
