package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"github.com/openmined/libsync/internal/library"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func init() {
	rootCmd.AddCommand(newLibrariesCmd())
}

func newLibrariesCmd() *cobra.Command {
	var (
		output  string
		deleted bool
	)

	cmd := &cobra.Command{
		Use:     "libraries",
		Aliases: []string{"ls"},
		Short:   "List the data libraries on the server",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output = strings.ToLower(output)
			if output != outputTable && output != outputJSON && output != outputYAML {
				return &library.ConfigurationError{Field: "output", Value: output, Err: fmt.Errorf("must be one of %s, %s, %s", outputTable, outputJSON, outputYAML)}
			}

			cfg, _, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			client, err := newGalaxyClient(cfg)
			if err != nil {
				return err
			}

			libs, err := client.ListLibraries(cmd.Context(), deleted)
			if err != nil {
				return err
			}

			return printLibraries(cmd.OutOrStdout(), output, libs)
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, json or yaml")
	cmd.Flags().BoolVar(&deleted, "deleted", false, "list deleted libraries instead")

	return cmd
}

func printLibraries(w io.Writer, format string, libs []library.Library) error {
	if libs == nil {
		libs = []library.Library{}
	}

	switch format {
	case outputJSON:
		b, err := json.MarshalIndent(libs, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(libs); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(libs) == 0 {
		_, err := fmt.Fprintln(w, gray.Render("no libraries"))
		return err
	}

	nameWidth := 0
	for _, l := range libs {
		nameWidth = max(nameWidth, lipgloss.Width(l.Name))
	}
	nameStyle := cyan.Width(nameWidth + 2)
	for _, l := range libs {
		line := nameStyle.Render(l.Name) + gray.Render(l.ID)
		if l.Description != "" {
			line += "  " + l.Description
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
