package repository

import (
	"context"
	"database/sql"

	"github.com/briochebrew/restaurant-reservation/internal/model"
)

// StaffRepo persists staff accounts for the admin surface.
type StaffRepo struct {
	db *sql.DB
}

// NewStaffRepo returns a StaffRepo bound to the given database.
func NewStaffRepo(db *sql.DB) *StaffRepo { return &StaffRepo{db: db} }

// GetByEmail loads an active staff account by email.
func (r *StaffRepo) GetByEmail(ctx context.Context, email string) (*model.StaffUser, error) {
	var u model.StaffUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, is_active, created_at
		 FROM staff_users WHERE email = ? AND is_active = 1`, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a staff account by its numeric ID.
func (r *StaffRepo) GetByID(ctx context.Context, id uint64) (*model.StaffUser, error) {
	var u model.StaffUser
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, role, is_active, created_at
		 FROM staff_users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureAdmin seeds the initial admin account when it does not exist yet.
// Called at startup with credentials from the environment.
func (r *StaffRepo) EnsureAdmin(ctx context.Context, email, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT IGNORE INTO staff_users (email, password_hash, role) VALUES (?, ?, ?)`,
		email, passwordHash, model.RoleAdmin)
	return err
}
