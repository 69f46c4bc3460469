// Package cli implements the folioctl command tree: offline maintenance
// against the daemon's database without going through the HTTP surface.
package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	dbpkg "github.com/akkharat/folioserv/internal/db"
)

// NewRootCmd builds the folioctl root command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folioctl",
		Short: "Operator CLI for the folioserv portfolio daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSetPasswordCmd())
	cmd.AddCommand(newSettingsCmd())
	cmd.AddCommand(newVersionCmd(version))

	return cmd
}

func openDatabase(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required (--db)")
	}
	return dbpkg.Open(dbpkg.Options{
		Path:          path,
		BusyTimeoutMS: 5000,
		MaxOpenConns:  1,
		MaxIdleConns:  1,
	})
}
