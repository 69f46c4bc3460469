package db

import (
	"context"
	"database/sql"
	"fmt"
)

// ---- experiences ----

const experienceColumns = `id, title, company, start_date, end_date, is_current, description, highlights, tech_stack, sort_order, created_at`

func scanExperience(scan func(...any) error) (Experience, error) {
	var out Experience
	var highlightsRaw, techStackRaw string
	err := scan(&out.ID, &out.Title, &out.Company, &out.StartDate, &out.EndDate, &out.IsCurrent,
		&out.Description, &highlightsRaw, &techStackRaw, &out.SortOrder, &out.CreatedAt)
	if err != nil {
		return out, err
	}
	if out.Highlights, err = decodeStrings("experience highlights", highlightsRaw); err != nil {
		return out, err
	}
	if out.TechStack, err = decodeStrings("experience tech stack", techStackRaw); err != nil {
		return out, err
	}
	return out, nil
}

func (q *Queries) ListExperiences(ctx context.Context) ([]Experience, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+experienceColumns+` FROM experiences ORDER BY sort_order, start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	defer rows.Close()

	out := []Experience{}
	for rows.Next() {
		row, err := scanExperience(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan experience row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate experience rows: %w", err)
	}
	return out, nil
}

func (q *Queries) GetExperienceByID(ctx context.Context, id int64) (Experience, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = ?`, id)
	out, err := scanExperience(row.Scan)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get experience by id: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertExperience(ctx context.Context, in Experience) (int64, error) {
	highlights, err := encodeStrings("experience highlights", in.Highlights)
	if err != nil {
		return 0, err
	}
	techStack, err := encodeStrings("experience tech stack", in.TechStack)
	if err != nil {
		return 0, err
	}
	res, err := q.db.ExecContext(ctx, `
INSERT INTO experiences(title, company, start_date, end_date, is_current, description, highlights, tech_stack, sort_order)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.Title, in.Company, in.StartDate, in.EndDate, in.IsCurrent, in.Description, highlights, techStack, in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert experience: %w", err)
	}
	return lastInsertID("insert experience", res)
}

// UpdateExperience assigns end_date unconditionally: clearing the end date
// is how an entry becomes open-ended again.
func (q *Queries) UpdateExperience(ctx context.Context, id int64, in ExperienceUpdate) (bool, error) {
	highlights, err := encodeStringsPtr("experience highlights", in.Highlights)
	if err != nil {
		return false, err
	}
	techStack, err := encodeStringsPtr("experience tech stack", in.TechStack)
	if err != nil {
		return false, err
	}
	res, err := q.db.ExecContext(ctx, `
UPDATE experiences SET
  title = COALESCE(?, title),
  company = COALESCE(?, company),
  start_date = COALESCE(?, start_date),
  end_date = ?,
  is_current = COALESCE(?, is_current),
  description = COALESCE(?, description),
  highlights = COALESCE(?, highlights),
  tech_stack = COALESCE(?, tech_stack),
  sort_order = COALESCE(?, sort_order)
WHERE id = ?
`, in.Title, in.Company, in.StartDate, in.EndDate, in.IsCurrent, in.Description, highlights, techStack, in.SortOrder, id)
	if err != nil {
		return false, fmt.Errorf("update experience: %w", err)
	}
	n, err := rowsAffected("update experience", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) DeleteExperience(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}

// ---- skills ----

func (q *Queries) ListSkills(ctx context.Context) ([]Skill, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name, percent, category, sort_order FROM skills ORDER BY sort_order, percent DESC`)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	out := []Skill{}
	for rows.Next() {
		var row Skill
		if err := rows.Scan(&row.ID, &row.Name, &row.Percent, &row.Category, &row.SortOrder); err != nil {
			return nil, fmt.Errorf("scan skill row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill rows: %w", err)
	}
	return out, nil
}

func (q *Queries) GetSkillByID(ctx context.Context, id int64) (Skill, error) {
	var out Skill
	err := q.db.QueryRowContext(ctx, `SELECT id, name, percent, category, sort_order FROM skills WHERE id = ?`, id).
		Scan(&out.ID, &out.Name, &out.Percent, &out.Category, &out.SortOrder)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get skill by id: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertSkill(ctx context.Context, in Skill) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO skills(name, percent, category, sort_order) VALUES(?, ?, ?, ?)`,
		in.Name, in.Percent, in.Category, in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert skill: %w", err)
	}
	return lastInsertID("insert skill", res)
}

func (q *Queries) UpdateSkill(ctx context.Context, id int64, in SkillUpdate) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
UPDATE skills SET
  name = COALESCE(?, name),
  percent = COALESCE(?, percent),
  category = COALESCE(?, category),
  sort_order = COALESCE(?, sort_order)
WHERE id = ?
`, in.Name, in.Percent, in.Category, in.SortOrder, id)
	if err != nil {
		return false, fmt.Errorf("update skill: %w", err)
	}
	n, err := rowsAffected("update skill", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) DeleteSkill(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

func (q *Queries) CountSkills(ctx context.Context) (int, error) {
	return q.countRows(ctx, "skills")
}

// ---- tech stack ----

func (q *Queries) ListTechStack(ctx context.Context) ([]TechStackEntry, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name, icon, sort_order FROM tech_stack ORDER BY sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list tech stack: %w", err)
	}
	defer rows.Close()

	out := []TechStackEntry{}
	for rows.Next() {
		var row TechStackEntry
		if err := rows.Scan(&row.ID, &row.Name, &row.Icon, &row.SortOrder); err != nil {
			return nil, fmt.Errorf("scan tech stack row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tech stack rows: %w", err)
	}
	return out, nil
}

func (q *Queries) GetTechStackByID(ctx context.Context, id int64) (TechStackEntry, error) {
	var out TechStackEntry
	err := q.db.QueryRowContext(ctx, `SELECT id, name, icon, sort_order FROM tech_stack WHERE id = ?`, id).
		Scan(&out.ID, &out.Name, &out.Icon, &out.SortOrder)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get tech stack entry by id: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertTechStack(ctx context.Context, in TechStackEntry) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO tech_stack(name, icon, sort_order) VALUES(?, ?, ?)`,
		in.Name, in.Icon, in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert tech stack entry: %w", err)
	}
	return lastInsertID("insert tech stack entry", res)
}

func (q *Queries) UpdateTechStack(ctx context.Context, id int64, in TechStackUpdate) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
UPDATE tech_stack SET
  name = COALESCE(?, name),
  icon = COALESCE(?, icon),
  sort_order = COALESCE(?, sort_order)
WHERE id = ?
`, in.Name, in.Icon, in.SortOrder, id)
	if err != nil {
		return false, fmt.Errorf("update tech stack entry: %w", err)
	}
	n, err := rowsAffected("update tech stack entry", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) DeleteTechStack(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM tech_stack WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tech stack entry: %w", err)
	}
	return nil
}

// ---- certifications ----

func (q *Queries) ListCertifications(ctx context.Context) ([]Certification, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, name, issuer, year, cert_url, sort_order FROM certifications ORDER BY sort_order, year DESC`)
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	defer rows.Close()

	out := []Certification{}
	for rows.Next() {
		var row Certification
		if err := rows.Scan(&row.ID, &row.Name, &row.Issuer, &row.Year, &row.CertURL, &row.SortOrder); err != nil {
			return nil, fmt.Errorf("scan certification row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate certification rows: %w", err)
	}
	return out, nil
}

func (q *Queries) GetCertificationByID(ctx context.Context, id int64) (Certification, error) {
	var out Certification
	err := q.db.QueryRowContext(ctx, `SELECT id, name, issuer, year, cert_url, sort_order FROM certifications WHERE id = ?`, id).
		Scan(&out.ID, &out.Name, &out.Issuer, &out.Year, &out.CertURL, &out.SortOrder)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get certification by id: %w", err)
	}
	return out, nil
}

func (q *Queries) InsertCertification(ctx context.Context, in Certification) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO certifications(name, issuer, year, cert_url, sort_order) VALUES(?, ?, ?, ?, ?)`,
		in.Name, in.Issuer, in.Year, in.CertURL, in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert certification: %w", err)
	}
	return lastInsertID("insert certification", res)
}

func (q *Queries) UpdateCertification(ctx context.Context, id int64, in CertificationUpdate) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
UPDATE certifications SET
  name = COALESCE(?, name),
  issuer = COALESCE(?, issuer),
  year = COALESCE(?, year),
  cert_url = COALESCE(?, cert_url),
  sort_order = COALESCE(?, sort_order)
WHERE id = ?
`, in.Name, in.Issuer, in.Year, in.CertURL, in.SortOrder, id)
	if err != nil {
		return false, fmt.Errorf("update certification: %w", err)
	}
	n, err := rowsAffected("update certification", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) SetCertificationURL(ctx context.Context, id int64, certURL string) (bool, error) {
	res, err := q.db.ExecContext(ctx, `UPDATE certifications SET cert_url = ? WHERE id = ?`, certURL, id)
	if err != nil {
		return false, fmt.Errorf("set certification url: %w", err)
	}
	n, err := rowsAffected("set certification url", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) DeleteCertification(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM certifications WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete certification: %w", err)
	}
	return nil
}

func (q *Queries) CountCertifications(ctx context.Context) (int, error) {
	return q.countRows(ctx, "certifications")
}

// countRows only ever receives compile-time table names.
func (q *Queries) countRows(ctx context.Context, table string) (int, error) {
	var n int
	if err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}
