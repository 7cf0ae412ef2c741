package entity

import (
	"time"
)

// Advertisement is a classifieds listing owned by a user. Listings are
// created once and never mutated or deleted by this service.
type Advertisement struct {
	ID          string
	Category    string
	SubCategory string
	Title       string
	Description string
	Price       float64
	Location    string
	Phone       string
	Images      []string
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
