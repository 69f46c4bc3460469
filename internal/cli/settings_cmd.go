package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change site settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newSettingsGetCmd())
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsGetCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "get [key]",
		Short: "Print one setting, or all settings when no key is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			settings, err := dbpkg.NewQueries(sqlDB).ListSettings(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, ok := settings[args[0]]
				if !ok {
					return fmt.Errorf("setting %q not found", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", key, settings[key])
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database file")

	return cmd
}

func newSettingsSetCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Upsert one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := dbpkg.NewQueries(sqlDB).UpsertSetting(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database file")

	return cmd
}
