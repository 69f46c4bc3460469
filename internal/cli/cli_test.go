package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akkharat/folioserv/internal/auth"
	dbpkg "github.com/akkharat/folioserv/internal/db"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd("v-test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if stdin != "" {
		cmd.SetIn(strings.NewReader(stdin))
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if strings.TrimSpace(out) != "v-test" {
		t.Fatalf("version output = %q", out)
	}
}

func TestMigrateAndSeed(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "folioserv.db")

	out, err := runCommand(t, "", "migrate", "--db", dbPath, "--seed",
		"--admin-username", "admin", "--admin-password", "password123", "--profile-name", "Akkharat")
	if err != nil {
		t.Fatalf("migrate error = %v", err)
	}
	if !strings.Contains(out, "migrations applied") || !strings.Contains(out, "seed data applied") {
		t.Fatalf("migrate output = %q", out)
	}

	sqlDB, err := openDatabase(dbPath)
	if err != nil {
		t.Fatalf("openDatabase() error = %v", err)
	}
	defer sqlDB.Close()

	q := dbpkg.NewQueries(sqlDB)
	user, err := q.GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("seeded user missing: %v", err)
	}
	if !auth.CheckPassword(user.Password, "password123") {
		t.Fatal("seeded password does not verify")
	}
	profile, err := q.GetProfile(context.Background())
	if err != nil {
		t.Fatalf("seeded profile missing: %v", err)
	}
	if profile.Name != "Akkharat" {
		t.Fatalf("profile name = %q", profile.Name)
	}
}

func TestMigrateSeedRequiresPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "folioserv.db")

	if _, err := runCommand(t, "", "migrate", "--db", dbPath, "--seed"); err == nil {
		t.Fatal("expected error when --seed lacks --admin-password")
	}
}

func TestSetPasswordFromStdin(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "folioserv.db")
	if _, err := runCommand(t, "", "migrate", "--db", dbPath, "--seed",
		"--admin-username", "admin", "--admin-password", "old-password"); err != nil {
		t.Fatalf("migrate error = %v", err)
	}

	out, err := runCommand(t, "rotated-password\n", "set-password", "--db", dbPath, "--username", "admin")
	if err != nil {
		t.Fatalf("set-password error = %v", err)
	}
	if !strings.Contains(out, "password updated for admin") {
		t.Fatalf("set-password output = %q", out)
	}

	sqlDB, err := openDatabase(dbPath)
	if err != nil {
		t.Fatalf("openDatabase() error = %v", err)
	}
	defer sqlDB.Close()

	user, err := dbpkg.NewQueries(sqlDB).GetUserByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("GetUserByUsername() error = %v", err)
	}
	if !auth.CheckPassword(user.Password, "rotated-password") {
		t.Fatal("rotated password does not verify")
	}
	if auth.CheckPassword(user.Password, "old-password") {
		t.Fatal("old password still verifies")
	}
}

func TestSetPasswordUnknownUser(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "folioserv.db")
	if _, err := runCommand(t, "", "migrate", "--db", dbPath); err != nil {
		t.Fatalf("migrate error = %v", err)
	}

	if _, err := runCommand(t, "", "set-password", "--db", dbPath, "--username", "ghost", "--password", "x"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}

func TestSettingsSetAndGet(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "folioserv.db")
	if _, err := runCommand(t, "", "migrate", "--db", dbPath); err != nil {
		t.Fatalf("migrate error = %v", err)
	}

	if _, err := runCommand(t, "", "settings", "set", "--db", dbPath, "show_projects", "false"); err != nil {
		t.Fatalf("settings set error = %v", err)
	}
	if _, err := runCommand(t, "", "settings", "set", "--db", dbPath, "tagline", "hello"); err != nil {
		t.Fatalf("settings set error = %v", err)
	}

	out, err := runCommand(t, "", "settings", "get", "--db", dbPath, "show_projects")
	if err != nil {
		t.Fatalf("settings get error = %v", err)
	}
	if strings.TrimSpace(out) != "false" {
		t.Fatalf("settings get output = %q", out)
	}

	out, err = runCommand(t, "", "settings", "get", "--db", dbPath)
	if err != nil {
		t.Fatalf("settings get (all) error = %v", err)
	}
	if !strings.Contains(out, "show_projects=false") || !strings.Contains(out, "tagline=hello") {
		t.Fatalf("settings list output = %q", out)
	}

	if _, err := runCommand(t, "", "settings", "get", "--db", dbPath, "missing-key"); err == nil {
		t.Fatal("expected error for unknown setting")
	}
}
