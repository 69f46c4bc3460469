package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SeedOptions struct {
	AdminUsername     string
	AdminPasswordHash string
	ProfileName       string
}

// defaultSettings are the feature toggles the front end reads. Values are
// stored as strings; only the literal "true" renders a section.
var defaultSettings = []string{
	"show_deliveries",
	"show_certifications",
	"show_skills",
	"show_projects",
	"show_experience",
}

// Seed makes first boot usable: one admin user, the singleton profile row
// and the default feature toggles. Every step is a no-op when the row
// already exists, so calling Seed on every start is safe.
func Seed(ctx context.Context, sqlDB *sql.DB, opts SeedOptions) error {
	if opts.AdminUsername == "" || opts.AdminPasswordHash == "" {
		return fmt.Errorf("admin username and password hash are required")
	}

	q := NewQueries(sqlDB)

	_, err := q.GetUserByUsername(ctx, opts.AdminUsername)
	if errors.Is(err, ErrNotFound) {
		if _, err := q.InsertUser(ctx, opts.AdminUsername, opts.AdminPasswordHash, "admin"); err != nil {
			return fmt.Errorf("seed admin user: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}

	_, err = q.GetProfile(ctx)
	if errors.Is(err, ErrNotFound) {
		name := opts.ProfileName
		if name == "" {
			name = "Unnamed"
		}
		if _, err := q.InsertProfile(ctx, Profile{Name: name}); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("check profile: %w", err)
	}

	existing, err := q.ListSettings(ctx)
	if err != nil {
		return fmt.Errorf("check settings: %w", err)
	}
	if len(existing) == 0 {
		for _, key := range defaultSettings {
			if err := q.UpsertSetting(ctx, key, "true"); err != nil {
				return fmt.Errorf("seed setting %s: %w", key, err)
			}
		}
	}

	return nil
}
