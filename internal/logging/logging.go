package logging

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// Setup installs a charmbracelet logger writing to w as the default slog handler.
func Setup(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          "glowmenu",
		Level:           lvl,
	})

	slog.SetDefault(slog.New(logger))

	return logger, nil
}

// SetLevel changes the level of a logger created by Setup.
func SetLevel(logger *log.Logger, level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	if logger.GetLevel() != lvl {
		logger.SetLevel(lvl)
		slog.Info("Log level changed", slog.String("level", lvl.String()))
	}

	return nil
}
