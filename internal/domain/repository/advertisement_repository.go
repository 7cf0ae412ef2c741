package repository

import (
	"context"

	"github.com/freeads/marketplace-api/internal/domain/entity"
)

// AdvertisementRepository defines the interface for listing persistence.
type AdvertisementRepository interface {
	// Create persists the advertisement and fills in the server-assigned
	// id and timestamps on success.
	Create(ctx context.Context, ad *entity.Advertisement) error
	GetByID(ctx context.Context, id string) (*entity.Advertisement, error)
	// List returns listings newest-first, optionally filtered by category.
	List(ctx context.Context, category string, limit, offset int) ([]*entity.Advertisement, error)
}
