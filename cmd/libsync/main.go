package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/openmined/libsync/internal/config"
	"github.com/openmined/libsync/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "libsync",
	Short: "Mirror local genome directories into Galaxy data libraries",
	Long: `libsync mirrors a local directory tree into a Galaxy data library.
Folders and files missing from the library are created, nothing is ever
deleted, and running it again only adds what changed locally.

When the Galaxy server runs on this host (localhost or a loopback address)
files are linked in place; otherwise they are uploaded.`,
	Version:       version.Detailed(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.SortFlags = false
	pf.StringP(config.KeyServerURL, "u", config.DefaultServerURL, "the Galaxy URL")
	pf.StringP(config.KeyAPIKey, "k", "", "the Galaxy API key to use (default $LIBSYNC_KEY or $GALAXY_KEY)")
	pf.Duration(config.KeyTimeout, config.DefaultTimeout, "timeout for each request to Galaxy, 0 to disable")
	pf.BoolP(config.KeyVerbose, "v", false, "print out debugging information")
	pf.StringP("config", "c", "", "config file (default "+config.DefaultConfigDir+"/config.yaml)")
}

func main() {
	// stderr only until the config says whether we are verbose
	slog.SetDefault(newLogger(false))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := execute(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// execute runs the command line and returns the process exit code.
func execute(ctx context.Context, args []string) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", red.Render("ERROR"), err)
		return 1
	}
	return 0
}
