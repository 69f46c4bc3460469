package db

import (
	"context"
	"database/sql"
	"fmt"
)

const projectColumns = `id, name, description, category, thumbnail_url, demo_url, github_url, admin_notes, is_featured, sort_order, created_at`

func scanProject(scan func(...any) error) (Project, error) {
	var out Project
	err := scan(&out.ID, &out.Name, &out.Description, &out.Category, &out.ThumbnailURL,
		&out.DemoURL, &out.GithubURL, &out.AdminNotes, &out.IsFeatured, &out.SortOrder, &out.CreatedAt)
	return out, err
}

func (q *Queries) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY sort_order, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := []Project{}
	for rows.Next() {
		row, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}
	return out, nil
}

// ListProjectsWithImages joins parents and children in application code:
// one query per table, grouped by project id. Every project carries a
// non-nil (possibly empty) image list.
func (q *Queries) ListProjectsWithImages(ctx context.Context) ([]Project, error) {
	projects, err := q.ListProjects(ctx)
	if err != nil {
		return nil, err
	}
	images, err := q.listImages(ctx, "project_images", "project_id")
	if err != nil {
		return nil, err
	}
	byParent := map[int64][]Image{}
	for _, img := range images {
		byParent[img.ParentID] = append(byParent[img.ParentID], img)
	}
	for i := range projects {
		imgs := byParent[projects[i].ID]
		if imgs == nil {
			imgs = []Image{}
		}
		projects[i].Images = imgs
	}
	return projects, nil
}

func (q *Queries) GetProjectByID(ctx context.Context, id int64) (Project, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	out, err := scanProject(row.Scan)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get project by id: %w", err)
	}
	out.Images = []Image{}
	return out, nil
}

func (q *Queries) InsertProject(ctx context.Context, in Project) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
INSERT INTO projects(name, description, category, is_featured, demo_url, github_url, admin_notes, sort_order)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, in.Name, in.Description, in.Category, in.IsFeatured, in.DemoURL, in.GithubURL, in.AdminNotes, in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	return lastInsertID("insert project", res)
}

func (q *Queries) UpdateProject(ctx context.Context, id int64, in ProjectUpdate) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
UPDATE projects SET
  name = COALESCE(?, name),
  description = COALESCE(?, description),
  category = COALESCE(?, category),
  is_featured = COALESCE(?, is_featured),
  sort_order = COALESCE(?, sort_order),
  demo_url = COALESCE(?, demo_url),
  github_url = COALESCE(?, github_url),
  admin_notes = COALESCE(?, admin_notes)
WHERE id = ?
`, in.Name, in.Description, in.Category, in.IsFeatured, in.SortOrder, in.DemoURL, in.GithubURL, in.AdminNotes, id)
	if err != nil {
		return false, fmt.Errorf("update project: %w", err)
	}
	n, err := rowsAffected("update project", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) SetProjectThumbnail(ctx context.Context, id int64, thumbnailURL string) error {
	_, err := q.db.ExecContext(ctx, `UPDATE projects SET thumbnail_url = ? WHERE id = ?`, thumbnailURL, id)
	if err != nil {
		return fmt.Errorf("set project thumbnail: %w", err)
	}
	return nil
}

func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (q *Queries) CountProjects(ctx context.Context) (int, error) {
	return q.countRows(ctx, "projects")
}

// ---- project images ----

func (q *Queries) InsertProjectImage(ctx context.Context, projectID int64, imageURL, caption string, sortOrder int) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO project_images(project_id, image_url, caption, sort_order) VALUES(?, ?, ?, ?)`,
		projectID, imageURL, caption, sortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert project image: %w", err)
	}
	return lastInsertID("insert project image", res)
}

func (q *Queries) GetProjectImageByID(ctx context.Context, id int64) (Image, error) {
	var out Image
	err := q.db.QueryRowContext(ctx, `SELECT id, project_id, image_url, caption, sort_order, created_at FROM project_images WHERE id = ?`, id).
		Scan(&out.ID, &out.ParentID, &out.ImageURL, &out.Caption, &out.SortOrder, &out.CreatedAt)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get project image by id: %w", err)
	}
	return out, nil
}

func (q *Queries) ListProjectImages(ctx context.Context, projectID int64) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, project_id, image_url, caption, sort_order, created_at FROM project_images WHERE project_id = ? ORDER BY sort_order, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project images: %w", err)
	}
	return collectImages(rows, "project image")
}

func (q *Queries) DeleteProjectImage(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM project_images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project image: %w", err)
	}
	return nil
}

func (q *Queries) CountProjectImages(ctx context.Context) (int, error) {
	return q.countRows(ctx, "project_images")
}

// listImages reads all child rows of one image table ordered for embedding.
// Table and column names are compile-time constants at every call site.
func (q *Queries) listImages(ctx context.Context, table, parentColumn string) ([]Image, error) {
	query := fmt.Sprintf(`SELECT id, %s, image_url, caption, sort_order, created_at FROM %s ORDER BY %s, sort_order, id`, parentColumn, table, parentColumn)
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s rows: %w", table, err)
	}
	return collectImages(rows, table)
}

func collectImages(rows *sql.Rows, label string) ([]Image, error) {
	defer rows.Close()

	out := []Image{}
	for rows.Next() {
		var row Image
		if err := rows.Scan(&row.ID, &row.ParentID, &row.ImageURL, &row.Caption, &row.SortOrder, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", label, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", label, err)
	}
	return out, nil
}
