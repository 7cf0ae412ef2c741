package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freeads/marketplace-api/internal/domain/entity"
	"github.com/freeads/marketplace-api/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Empty strings map to NULL so the partial-unique constraints on phone and
// google_id apply only when the credential is present.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, phone, google_id, email)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''))
		RETURNING id, created_at, updated_at
	`, u.Name, u.Phone, u.GoogleID, u.Email)

	return mapError(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

const userColumns = `id, name, COALESCE(phone, ''), COALESCE(google_id, ''), COALESCE(email, ''), created_at, updated_at`

func (r *UserRepository) scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Phone, &u.GoogleID, &u.Email,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*entity.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE phone = $1
	`, phone))
}

func (r *UserRepository) GetByGoogle(ctx context.Context, googleID, email string) (*entity.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE google_id = $1 OR (email <> '' AND email = $2)
		ORDER BY (google_id = $1) DESC NULLS LAST
		LIMIT 1
	`, googleID, email))
}

func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, updated_at = now()
		WHERE id = $2
	`, name, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
