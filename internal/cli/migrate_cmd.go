package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akkharat/folioserv/internal/auth"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

func newMigrateCmd() *cobra.Command {
	var (
		dbPath        string
		seed          bool
		adminUsername string
		adminPassword string
		profileName   string
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			sqlDB, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := dbpkg.RunMigrations(cmd.Context(), sqlDB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")

			if !seed {
				return nil
			}
			if adminPassword == "" {
				return fmt.Errorf("--admin-password is required with --seed")
			}
			hash, err := auth.HashPassword(adminPassword)
			if err != nil {
				return err
			}
			if err := dbpkg.Seed(cmd.Context(), sqlDB, dbpkg.SeedOptions{
				AdminUsername:     adminUsername,
				AdminPasswordHash: hash,
				ProfileName:       profileName,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "seed data applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database file")
	cmd.Flags().BoolVar(&seed, "seed", false, "Seed the admin user, profile row and default settings")
	cmd.Flags().StringVar(&adminUsername, "admin-username", "admin", "Admin username to seed")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "Admin password to seed (required with --seed)")
	cmd.Flags().StringVar(&profileName, "profile-name", "", "Display name for the seeded profile row")

	return cmd
}
