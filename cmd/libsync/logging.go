package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/openmined/libsync/internal/utils"
)

const logTimeFormat = "15:04:05.000"

// newLogger sends warnings and errors to stderr. In verbose mode debug and
// info records go to stdout as well.
func newLogger(verbose bool) *slog.Logger {
	stderrHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelWarn,
		TimeFormat: logTimeFormat,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})

	if !verbose {
		return slog.New(stderrHandler)
	}

	stdoutHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: logTimeFormat,
		NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
	})

	return slog.New(utils.NewFanoutHandler(
		utils.NewBelowLevelHandler(stdoutHandler, slog.LevelWarn),
		stderrHandler,
	))
}
