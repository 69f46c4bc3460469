package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/akkharat/folioserv/internal/auth"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

func newSetPasswordCmd() *cobra.Command {
	var (
		dbPath   string
		username string
		password string
	)

	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Rotate a user's password",
		Long:  "Rotate a user's password. The new password is taken from --password, or read from stdin when the flag is absent.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				return fmt.Errorf("--username is required")
			}
			if password == "" {
				reader := bufio.NewReader(cmd.InOrStdin())
				line, err := reader.ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("new password must not be empty")
			}

			sqlDB, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			q := dbpkg.NewQueries(sqlDB)
			user, err := q.GetUserByUsername(cmd.Context(), username)
			if errors.Is(err, dbpkg.ErrNotFound) {
				return fmt.Errorf("user %q not found", username)
			}
			if err != nil {
				return err
			}

			hash, err := auth.HashPassword(password)
			if err != nil {
				return err
			}
			if err := q.UpdateUserPassword(cmd.Context(), user.ID, hash); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", username)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the sqlite database file")
	cmd.Flags().StringVar(&username, "username", "", "User whose password to rotate")
	cmd.Flags().StringVar(&password, "password", "", "New password (read from stdin when omitted)")

	return cmd
}
