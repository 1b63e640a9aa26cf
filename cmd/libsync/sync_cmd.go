package main

import (
	"path/filepath"

	"github.com/openmined/libsync/internal/library"
	"github.com/openmined/libsync/internal/utils"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newSyncCmd())
}

func newSyncCmd() *cobra.Command {
	var (
		name         string
		fileTypes    []string
		exclude      bool
		ignore       []string
		noIgnoreFile bool
	)

	cmd := &cobra.Command{
		Use:   "sync DIR",
		Short: "Mirror a local directory into a Galaxy data library",
		Long: `Mirror a local directory into a Galaxy data library.

The library is named after the directory unless --name is given, and is
created when it does not exist. Sub directories become folders. Files are
selected by suffix, and a ` + library.IgnoreFileName + ` file in DIR adds gitignore
style rules on top of --ignore.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := utils.ResolvePath(args[0])
			if err != nil {
				return &library.ConfigurationError{Field: "directory", Value: args[0], Err: err}
			}
			if !utils.DirExists(root) {
				return &library.ConfigurationError{Field: "directory", Value: args[0], Err: library.ErrNotFound}
			}

			if name == "" {
				name = filepath.Base(root)
			}

			opts := []library.SelectOption{library.WithIgnorePatterns(ignore...)}
			if !noIgnoreFile {
				opts = append(opts, library.WithIgnoreFile(library.IgnoreFileName))
			}

			filter := library.Filter{Types: fileTypes, Exclude: exclude}
			paths, err := library.Select(root, filter, opts...)
			if err != nil {
				return err
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger.Debug("files selected", "dir", root, "types", fileTypes, "exclude", exclude, "count", len(paths))

			return runSync(cmd, cfg, logger, library.SyncRequest{
				Root:        root,
				LibraryName: name,
				Description: library.DirectoryDescription(name),
				Endpoint:    cfg.ServerURL,
			}, paths)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&name, "name", "n", "", "library name (default: the directory name)")
	cmd.Flags().StringSliceVarP(&fileTypes, "filetypes", "t", library.DefaultFileTypes, "file suffixes to sync")
	cmd.Flags().BoolVarP(&exclude, "exclude", "e", false, "sync every file except the given file types")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns of paths to skip, relative to DIR")
	cmd.Flags().BoolVar(&noIgnoreFile, "no-ignore-file", false, "do not read "+library.IgnoreFileName+" from DIR")

	return cmd
}
