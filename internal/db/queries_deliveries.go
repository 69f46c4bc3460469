package db

import (
	"context"
	"database/sql"
	"fmt"
)

const deliveryColumns = `id, project_name, contract_no, client, category, budget, start_date, end_date, year, description, status, sort_order, created_at`

func scanDelivery(scan func(...any) error) (Delivery, error) {
	var out Delivery
	err := scan(&out.ID, &out.ProjectName, &out.ContractNo, &out.Client, &out.Category, &out.Budget,
		&out.StartDate, &out.EndDate, &out.Year, &out.Description, &out.Status, &out.SortOrder, &out.CreatedAt)
	return out, err
}

func (q *Queries) ListDeliveries(ctx context.Context) ([]Delivery, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries ORDER BY year DESC, sort_order`)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	out := []Delivery{}
	for rows.Next() {
		row, err := scanDelivery(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan delivery row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate delivery rows: %w", err)
	}
	return out, nil
}

func (q *Queries) ListDeliveriesWithImages(ctx context.Context) ([]Delivery, error) {
	deliveries, err := q.ListDeliveries(ctx)
	if err != nil {
		return nil, err
	}
	images, err := q.listImages(ctx, "delivery_images", "delivery_id")
	if err != nil {
		return nil, err
	}
	byParent := map[int64][]Image{}
	for _, img := range images {
		byParent[img.ParentID] = append(byParent[img.ParentID], img)
	}
	for i := range deliveries {
		imgs := byParent[deliveries[i].ID]
		if imgs == nil {
			imgs = []Image{}
		}
		deliveries[i].Images = imgs
	}
	return deliveries, nil
}

func (q *Queries) GetDeliveryByID(ctx context.Context, id int64) (Delivery, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = ?`, id)
	out, err := scanDelivery(row.Scan)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get delivery by id: %w", err)
	}
	out.Images = []Image{}
	return out, nil
}

func (q *Queries) InsertDelivery(ctx context.Context, in Delivery) (int64, error) {
	res, err := q.db.ExecContext(ctx, `
INSERT INTO deliveries(project_name, contract_no, client, category, budget, start_date, end_date, year, description, status, sort_order)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, in.ProjectName, in.ContractNo, in.Client, in.Category, in.Budget, in.StartDate, in.EndDate, in.Year, in.Description, in.Status, in.SortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert delivery: %w", err)
	}
	return lastInsertID("insert delivery", res)
}

func (q *Queries) UpdateDelivery(ctx context.Context, id int64, in DeliveryUpdate) (bool, error) {
	res, err := q.db.ExecContext(ctx, `
UPDATE deliveries SET
  project_name = COALESCE(?, project_name),
  contract_no = COALESCE(?, contract_no),
  client = COALESCE(?, client),
  category = COALESCE(?, category),
  budget = COALESCE(?, budget),
  start_date = COALESCE(?, start_date),
  end_date = COALESCE(?, end_date),
  year = COALESCE(?, year),
  description = COALESCE(?, description),
  status = COALESCE(?, status),
  sort_order = COALESCE(?, sort_order)
WHERE id = ?
`, in.ProjectName, in.ContractNo, in.Client, in.Category, in.Budget, in.StartDate, in.EndDate, in.Year, in.Description, in.Status, in.SortOrder, id)
	if err != nil {
		return false, fmt.Errorf("update delivery: %w", err)
	}
	n, err := rowsAffected("update delivery", res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *Queries) DeleteDelivery(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM deliveries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}

// ---- delivery images ----

func (q *Queries) InsertDeliveryImage(ctx context.Context, deliveryID int64, imageURL, caption string, sortOrder int) (int64, error) {
	res, err := q.db.ExecContext(ctx, `INSERT INTO delivery_images(delivery_id, image_url, caption, sort_order) VALUES(?, ?, ?, ?)`,
		deliveryID, imageURL, caption, sortOrder)
	if err != nil {
		return 0, fmt.Errorf("insert delivery image: %w", err)
	}
	return lastInsertID("insert delivery image", res)
}

func (q *Queries) GetDeliveryImageByID(ctx context.Context, id int64) (Image, error) {
	var out Image
	err := q.db.QueryRowContext(ctx, `SELECT id, delivery_id, image_url, caption, sort_order, created_at FROM delivery_images WHERE id = ?`, id).
		Scan(&out.ID, &out.ParentID, &out.ImageURL, &out.Caption, &out.SortOrder, &out.CreatedAt)
	if err == sql.ErrNoRows {
		return out, ErrNotFound
	}
	if err != nil {
		return out, fmt.Errorf("get delivery image by id: %w", err)
	}
	return out, nil
}

func (q *Queries) ListDeliveryImages(ctx context.Context, deliveryID int64) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT id, delivery_id, image_url, caption, sort_order, created_at FROM delivery_images WHERE delivery_id = ? ORDER BY sort_order, id`, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("list delivery images: %w", err)
	}
	return collectImages(rows, "delivery image")
}

func (q *Queries) DeleteDeliveryImage(ctx context.Context, id int64) error {
	if _, err := q.db.ExecContext(ctx, `DELETE FROM delivery_images WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete delivery image: %w", err)
	}
	return nil
}
