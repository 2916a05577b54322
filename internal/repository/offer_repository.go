package repository

import (
	"context"
	"database/sql"

	"github.com/briochebrew/restaurant-reservation/internal/model"
)

// OfferRepo persists special offers.
type OfferRepo struct {
	db *sql.DB
}

// NewOfferRepo returns an OfferRepo bound to the given database.
func NewOfferRepo(db *sql.DB) *OfferRepo { return &OfferRepo{db: db} }

const offerColumns = `id, title, description, original_price, offer_price, discount_percent,
	badge, image_url, is_active, created_at, updated_at`

func scanOffer(scan func(dest ...interface{}) error) (*model.SpecialOffer, error) {
	var o model.SpecialOffer
	var desc, badge, img sql.NullString
	err := scan(&o.ID, &o.Title, &desc, &o.OriginalPrice, &o.OfferPrice, &o.DiscountPct,
		&badge, &img, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		src sql.NullString
		dst **string
	}{{desc, &o.Description}, {badge, &o.Badge}, {img, &o.ImageURL}} {
		if pair.src.Valid {
			v := pair.src.String
			*pair.dst = &v
		}
	}
	return &o, nil
}

// Create inserts an offer and populates its generated ID.
func (r *OfferRepo) Create(ctx context.Context, o *model.SpecialOffer) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO special_offers
			(title, description, original_price, offer_price, discount_percent, badge, image_url, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Title, o.Description, o.OriginalPrice, o.OfferPrice, o.DiscountPct, o.Badge, o.ImageURL, o.IsActive)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	return nil
}

// Update rewrites all editable fields of an offer.
func (r *OfferRepo) Update(ctx context.Context, o *model.SpecialOffer) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE special_offers SET title = ?, description = ?, original_price = ?, offer_price = ?,
			discount_percent = ?, badge = ?, image_url = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		o.Title, o.Description, o.OriginalPrice, o.OfferPrice, o.DiscountPct, o.Badge, o.ImageURL, o.IsActive, o.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// List returns offers, newest first.  When activeOnly is set, inactive offers
// are filtered out (the public menu view).
func (r *OfferRepo) List(ctx context.Context, activeOnly bool) ([]model.SpecialOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM special_offers`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.SpecialOffer, 0)
	for rows.Next() {
		o, err := scanOffer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// SetActive flips the activation flag of an offer.
func (r *OfferRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE special_offers SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}

// Delete removes an offer.
func (r *OfferRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM special_offers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
