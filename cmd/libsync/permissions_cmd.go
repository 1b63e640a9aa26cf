package main

import (
	"errors"
	"fmt"

	"github.com/openmined/libsync/internal/library"
	"github.com/spf13/cobra"
)

var (
	errNoCategory = errors.New("choose at least one of --see-library, --add-files, --modify-info, --modify-permissions")
	errNoEmails   = errors.New("give --emails, or --reset to clear the chosen categories")
)

func init() {
	rootCmd.AddCommand(newPermissionsCmd())
}

func newPermissionsCmd() *cobra.Command {
	var (
		emails                                   []string
		addFiles, seeLibrary, modifyInfo, manage bool
		reset                                    bool
	)

	cmd := &cobra.Command{
		Use:   "permissions NAME",
		Short: "Grant users permissions on an existing library",
		Long: `Grant users permissions on an existing library.

Users are given by email. Emails without a Galaxy account are reported and
skipped. Existing permissions are kept unless --reset is given, in which case
the chosen categories hold exactly the given users. --reset without --emails
returns the chosen categories to Galaxy's default, with no explicit grantees.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var categories []library.Category
			for _, c := range []struct {
				on  bool
				cat library.Category
			}{
				{seeLibrary, library.CategoryView},
				{addFiles, library.CategoryAddFiles},
				{modifyInfo, library.CategoryEditInfo},
				{manage, library.CategoryManagePermissions},
			} {
				if c.on {
					categories = append(categories, c.cat)
				}
			}
			if len(categories) == 0 {
				return &library.ConfigurationError{Field: "permissions", Value: "", Err: errNoCategory}
			}
			if len(emails) == 0 && !reset {
				return &library.ConfigurationError{Field: "emails", Value: "", Err: errNoEmails}
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			client, err := newGalaxyClient(cfg)
			if err != nil {
				return err
			}

			perms, err := library.EditPermissions(cmd.Context(), client, library.PermissionRequest{
				LibraryName: args[0],
				Emails:      emails,
				Categories:  categories,
				Reset:       reset,
			}, logger)
			if err != nil {
				return err
			}

			if cfg.Verbose {
				w := cmd.OutOrStdout()
				for _, c := range library.Categories {
					fmt.Fprintf(w, "%s %d users\n", cyan.Width(20).Render(string(c)), len(perms.IDs(c)))
				}
			}
			return nil
		},
	}

	cmd.Flags().SortFlags = false
	cmd.Flags().StringSliceVarP(&emails, "emails", "e", nil, "emails of the users to grant")
	cmd.Flags().BoolVarP(&seeLibrary, "see-library", "s", false, "users can see the library")
	cmd.Flags().BoolVarP(&addFiles, "add-files", "a", false, "users can add files to the library")
	cmd.Flags().BoolVarP(&modifyInfo, "modify-info", "i", false, "users can edit the library info")
	cmd.Flags().BoolVarP(&manage, "modify-permissions", "p", false, "users can manage the library permissions")
	cmd.Flags().BoolVarP(&reset, "reset", "r", false, "replace the chosen categories instead of adding to them")

	return cmd
}
