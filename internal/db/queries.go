package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db queryer
}

func NewQueries(db queryer) *Queries {
	return &Queries{db: db}
}

// ErrNotFound reports a lookup that matched no row. Queries return it
// unwrapped so callers can branch on it with errors.Is.
var ErrNotFound = sql.ErrNoRows

func lastInsertID(op string, res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s last insert id: %w", op, err)
	}
	return id, nil
}

func rowsAffected(op string, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s rows affected: %w", op, err)
	}
	return n, nil
}

func encodeStrings(op string, values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", op, err)
	}
	return string(b), nil
}

func decodeStrings(op, raw string) ([]string, error) {
	out := []string{}
	if raw == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", op, err)
	}
	return out, nil
}

// encodeStringsPtr maps a nil slice to NULL so COALESCE keeps the stored
// value on partial updates.
func encodeStringsPtr(op string, values []string) (*string, error) {
	if values == nil {
		return nil, nil
	}
	encoded, err := encodeStrings(op, values)
	if err != nil {
		return nil, err
	}
	return &encoded, nil
}

// ---- users ----

func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	var out User
	err := q.db.QueryRowContext(ctx, `SELECT id, username, password, role, created_at FROM users WHERE username = ?`, username).
		Scan(&out.ID, &out.Username, &out.Password, &out.Role, &out.CreatedAt)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get user by username: %w", err)
	}
	return out, nil
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	var out User
	err := q.db.QueryRowContext(ctx, `SELECT id, username, password, role, created_at FROM users WHERE id = ?`, id).
		Scan(&out.ID, &out.Username, &out.Password, &out.Role, &out.CreatedAt)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get user by id: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertUser(ctx context.Context, username, passwordHash, role string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO users(username, password, role) VALUES(?, ?, ?)`, username, passwordHash, role)
	if err != nil {
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return lastInsertID("insert user", res)
}

func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE users SET password = ? WHERE id = ?`, passwordHash, id)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}

// ---- profile ----

const profileColumns = `id, name, name_th, role, location, experience, company, email, phone, avatar_url, github_url, linkedin_url, resume_url, bio, updated_at`

func scanProfile(row *sql.Row) (Profile, error) {
	var out Profile
	err := row.Scan(&out.ID, &out.Name, &out.NameTH, &out.Role, &out.Location, &out.Experience,
		&out.Company, &out.Email, &out.Phone, &out.AvatarURL, &out.GithubURL, &out.LinkedinURL,
		&out.ResumeURL, &out.Bio, &out.UpdatedAt)
	return out, err
}

// GetProfile reads the singleton profile row. The row is seeded at boot;
// ErrNotFound only happens against an unseeded database.
func (q *Queries) GetProfile(ctx context.Context) (Profile, error) {
	out, err := scanProfile(q.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profile ORDER BY id LIMIT 1`))
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get profile: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertProfile(ctx context.Context, in Profile) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
INSERT INTO profile(name, name_th, role, location, experience, company, email, phone, avatar_url, github_url, linkedin_url, resume_url, bio)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.NameTH, in.Role, in.Location, in.Experience, in.Company, in.Email, in.Phone,
		in.AvatarURL, in.GithubURL, in.LinkedinURL, in.ResumeURL, in.Bio)
	if err != nil {
		return 0, fmt.Errorf("insert profile: %w", err)
	}
	return lastInsertID("insert profile", res)
}

func (q *Queries) UpdateProfile(ctx context.Context, in ProfileUpdate) (Profile, error) {
	_, err := q.db.ExecContext(ctx, `
UPDATE profile SET
  name = COALESCE(?, name),
  name_th = COALESCE(?, name_th),
  role = COALESCE(?, role),
  location = COALESCE(?, location),
  experience = COALESCE(?, experience),
  company = COALESCE(?, company),
  email = COALESCE(?, email),
  phone = COALESCE(?, phone),
  bio = COALESCE(?, bio),
  github_url = COALESCE(?, github_url),
  linkedin_url = COALESCE(?, linkedin_url),
  resume_url = COALESCE(?, resume_url),
  avatar_url = COALESCE(?, avatar_url),
  updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
WHERE id = (SELECT id FROM profile ORDER BY id LIMIT 1)
`, in.Name, in.NameTH, in.Role, in.Location, in.Experience, in.Company, in.Email, in.Phone,
		in.Bio, in.GithubURL, in.LinkedinURL, in.ResumeURL, in.AvatarURL)
	if err != nil {
		return Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return q.GetProfile(ctx)
}

// ---- site settings ----

func (q *Queries) ListSettings(ctx context.Context) (map[string]string, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT setting_key, setting_value FROM site_settings`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting row: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate setting rows: %w", err)
	}
	return out, nil
}

func (q *Queries) UpsertSetting(ctx context.Context, key, value string) error {
	_, err := q.db.ExecContext(ctx, `
INSERT INTO site_settings(setting_key, setting_value)
VALUES(?, ?)
ON CONFLICT(setting_key) DO UPDATE SET
  setting_value=excluded.setting_value,
  updated_at=strftime('%Y-%m-%dT%H:%M:%fZ','now')
`, key, value)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// ---- activity log ----

func (q *Queries) InsertActivity(ctx context.Context, action, details string, userID *int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO activity_log(action, details, user_id) VALUES(?, ?, ?)`, action, details, userID)
	if err != nil {
		return 0, fmt.Errorf("insert activity entry: %w", err)
	}
	return lastInsertID("insert activity entry", res)
}

func (q *Queries) ListRecentActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	rows, err := q.db.QueryContext(ctx, `
SELECT id, action, details, user_id, created_at
FROM activity_log
ORDER BY created_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent activity: %w", err)
	}
	defer rows.Close()

	out := []ActivityEntry{}
	for rows.Next() {
		var row ActivityEntry
		if err := rows.Scan(&row.ID, &row.Action, &row.Details, &row.UserID, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}
	return out, nil
}
