package main

import (
	"github.com/openmined/libsync/internal/library"
	"github.com/openmined/libsync/internal/utils"
	"github.com/spf13/cobra"
)

const defaultRefSeqDir = "/mnt/galaxyIndices/Bacteria/"

func init() {
	rootCmd.AddCommand(newRefSeqCmd())
}

func newRefSeqCmd() *cobra.Command {
	var (
		species   string
		dir       string
		name      string
		fileTypes []string
		exclude   bool
	)

	cmd := &cobra.Command{
		Use:   "refseq GENUS",
		Short: "Build a library from the RefSeq genomes of a genus",
		Long: `Build a library from the RefSeq genomes of a genus, or of one species
with --species.

Genome directories in --dir are named "genus_species_strain". Each matching
directory becomes a top level folder holding its genome files. The library
is named "genus" or "genus species" unless --name is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := utils.ResolvePath(dir)
			if err != nil {
				return &library.ConfigurationError{Field: "directory", Value: dir, Err: err}
			}
			if !utils.DirExists(root) {
				return &library.ConfigurationError{Field: "directory", Value: dir, Err: library.ErrNotFound}
			}

			idx, err := library.GroupRefSeq(root)
			if err != nil {
				return err
			}

			genus := args[0]
			filter := library.Filter{Types: fileTypes, Exclude: exclude}
			paths, err := idx.Paths(root, genus, species, filter)
			if err != nil {
				return err
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger.Debug("genomes selected", "genus", genus, "species", species, "files", len(paths))

			if name == "" {
				name = library.RefSeqLibraryName(genus, species)
			}

			return runSync(cmd, cfg, logger, library.SyncRequest{
				Root:        root,
				LibraryName: name,
				Description: library.RefSeqDescription(name),
				Endpoint:    cfg.ServerURL,
			}, paths)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&species, "species", "s", "", "limit to one species of the genus")
	cmd.Flags().StringVarP(&dir, "dir", "d", defaultRefSeqDir, "directory holding the RefSeq genome directories")
	cmd.Flags().StringVarP(&name, "name", "n", "", "library name (default: genus, or genus and species)")
	cmd.Flags().StringSliceVarP(&fileTypes, "filetypes", "t", library.DefaultFileTypes, "file suffixes to sync")
	cmd.Flags().BoolVarP(&exclude, "exclude", "e", false, "sync every file except the given file types")

	return cmd
}
