package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freeads/marketplace-api/internal/domain/entity"
	"github.com/freeads/marketplace-api/internal/domain/repository"
)

type AdvertisementRepository struct {
	pool *pgxpool.Pool
}

func NewAdvertisementRepository(pool *pgxpool.Pool) *AdvertisementRepository {
	return &AdvertisementRepository{pool: pool}
}

func (r *AdvertisementRepository) Create(ctx context.Context, ad *entity.Advertisement) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO advertisements (category, sub_category, title, description, price, location, phone, images, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, ad.Category, ad.SubCategory, ad.Title, ad.Description, ad.Price, ad.Location, ad.Phone, ad.Images, ad.UserID)

	return mapError(row.Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt))
}

const adColumns = `id, category, sub_category, title, description, price, location, phone, images, user_id, created_at, updated_at`

func scanAd(row pgx.Row) (*entity.Advertisement, error) {
	ad := &entity.Advertisement{}
	if err := row.Scan(&ad.ID, &ad.Category, &ad.SubCategory, &ad.Title, &ad.Description,
		&ad.Price, &ad.Location, &ad.Phone, &ad.Images, &ad.UserID,
		&ad.CreatedAt, &ad.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return ad, nil
}

func (r *AdvertisementRepository) GetByID(ctx context.Context, id string) (*entity.Advertisement, error) {
	return scanAd(r.pool.QueryRow(ctx, `
		SELECT `+adColumns+`
		FROM advertisements
		WHERE id = $1
	`, id))
}

func (r *AdvertisementRepository) List(ctx context.Context, category string, limit, offset int) ([]*entity.Advertisement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+adColumns+`
		FROM advertisements
		WHERE ($1 = '' OR category = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ads := make([]*entity.Advertisement, 0, limit)
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, err
		}
		ads = append(ads, ad)
	}
	return ads, rows.Err()
}

var _ repository.AdvertisementRepository = (*AdvertisementRepository)(nil)
