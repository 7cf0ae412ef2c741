package repository

import (
	"context"

	"github.com/freeads/marketplace-api/internal/domain/entity"
)

// UserRepository defines the interface for credential-store operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByPhone(ctx context.Context, phone string) (*entity.User, error)
	// GetByGoogle looks a user up by federated id or, failing that, by email.
	GetByGoogle(ctx context.Context, googleID, email string) (*entity.User, error)
	UpdateName(ctx context.Context, id, name string) error
}
