package model

import "time"

// MenuItem mirrors the menu_items table.  Image bytes are handled by an
// external media service; only the resulting URL is stored here.
type MenuItem struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SpecialOffer mirrors the special_offers table.
type SpecialOffer struct {
	ID            uint64    `json:"id"`
	Title         string    `json:"title"`
	Description   *string   `json:"description"`
	OriginalPrice float64   `json:"originalPrice"`
	OfferPrice    float64   `json:"offerPrice"`
	DiscountPct   int       `json:"discountPercent"`
	Badge         *string   `json:"badge"`
	ImageURL      *string   `json:"imageUrl"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
