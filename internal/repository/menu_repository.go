package repository

import (
	"context"
	"database/sql"

	"github.com/briochebrew/restaurant-reservation/internal/model"
)

// MenuRepo persists menu items.
type MenuRepo struct {
	db *sql.DB
}

// NewMenuRepo returns a MenuRepo bound to the given database.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

const menuColumns = `id, name, category, price, description, image_url, is_available, created_at, updated_at`

func scanMenuItem(scan func(dest ...interface{}) error) (*model.MenuItem, error) {
	var m model.MenuItem
	var desc, img sql.NullString
	err := scan(&m.ID, &m.Name, &m.Category, &m.Price, &desc, &img, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		v := desc.String
		m.Description = &v
	}
	if img.Valid {
		v := img.String
		m.ImageURL = &v
	}
	return &m, nil
}

// Create inserts a menu item and populates its generated ID.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO menu_items (name, category, price, description, image_url, is_available)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.Name, m.Category, m.Price, m.Description, m.ImageURL, m.IsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// Update rewrites all editable fields of a menu item.
func (r *MenuRepo) Update(ctx context.Context, m *model.MenuItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET name = ?, category = ?, price = ?, description = ?,
			image_url = ?, is_available = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		m.Name, m.Category, m.Price, m.Description, m.ImageURL, m.IsAvailable, m.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// GetByID loads a single menu item.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = ?`, id)
	m, err := scanMenuItem(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return m, err
}

// List returns menu items, optionally filtered by category, grouped by
// category and name for stable menu rendering.
func (r *MenuRepo) List(ctx context.Context, category string) ([]model.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items`
	var args []interface{}
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY category, name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.MenuItem, 0)
	for rows.Next() {
		m, err := scanMenuItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Delete removes a menu item.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
