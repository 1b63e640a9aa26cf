package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/openmined/libsync/internal/config"
	"github.com/openmined/libsync/internal/galaxy"
	"github.com/openmined/libsync/internal/library"
	"github.com/openmined/libsync/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	red  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cyan = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	gray = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// loadConfig builds the run's config from the command's flags and installs the logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	opts := config.DefaultOptions()
	if f := cmd.Flag("config"); f != nil && f.Changed {
		opts.ConfigFile = f.Value.String()
	}

	cfg, err := config.Load(viper.New(), cmd.Flags(), opts)
	if err != nil {
		return nil, nil, err
	}

	logger := newLogger(cfg.Verbose)
	slog.SetDefault(logger)

	logger.Debug("config",
		"url", cfg.ServerURL,
		"key", utils.MaskSecret(cfg.APIKey),
		"timeout", cfg.Timeout,
		"file", cfg.Path,
	)
	return cfg, logger, nil
}

func newGalaxyClient(cfg *config.Config) (*galaxy.Client, error) {
	return galaxy.New(&galaxy.Config{
		BaseURL: cfg.ServerURL,
		APIKey:  cfg.APIKey,
		Timeout: cfg.Timeout,
	})
}

// runSync holds the library's sync lock for the duration of the engine run.
func runSync(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, req library.SyncRequest, paths []library.LocalPath) error {
	lock := library.NewSyncLock(config.DefaultLockDir, req.Endpoint, req.LibraryName)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("release sync lock", "path", lock.Path(), "error", err)
		}
	}()

	client, err := newGalaxyClient(cfg)
	if err != nil {
		return err
	}

	report, err := library.NewEngine(client, logger).Sync(cmd.Context(), req, paths)
	if report != nil && cfg.Verbose {
		printReport(cmd.OutOrStdout(), report)
	}
	return err
}

func printReport(w io.Writer, r *library.Report) {
	state := "existing"
	if r.LibraryCreated {
		state = "created"
	}
	fmt.Fprintf(w, "%s %s %s\n", cyan.Render(r.Library.Name), gray.Render(r.Library.ID), gray.Render("("+state+")"))
	fmt.Fprintf(w, "  transport  %s\n", r.Transport)
	fmt.Fprintf(w, "  folders    %d created\n", r.FoldersCreated)
	fmt.Fprintf(w, "  files      %d added, %d already present\n", r.FilesAdded, r.FilesSkipped)
}
