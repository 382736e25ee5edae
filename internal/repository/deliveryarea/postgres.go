package deliveryarea

import (
	"context"
	"errors"

	"azharstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func scanArea(row pgx.Row) (*domain.DeliveryArea, error) {
	var a domain.DeliveryArea
	var price string
	if err := row.Scan(&a.ID, &a.Name, &price); err != nil {
		return nil, err
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}
	a.Price = p
	return &a, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.DeliveryArea, error) {
	const q = `
SELECT id, name, price::text
FROM delivery_areas
ORDER BY name
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeliveryArea
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.DeliveryArea, error) {
	const q = `
SELECT id, name, price::text
FROM delivery_areas
WHERE id = $1
`
	a, err := scanArea(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *postgresRepo) Create(ctx context.Context, area domain.DeliveryArea) (*domain.DeliveryArea, error) {
	const q = `
INSERT INTO delivery_areas (name, price)
VALUES ($1, $2::numeric)
RETURNING id, name, price::text
`
	return scanArea(r.pool.QueryRow(ctx, q, area.Name, area.Price.String()))
}

func (r *postgresRepo) Update(ctx context.Context, area domain.DeliveryArea) (*domain.DeliveryArea, error) {
	const q = `
UPDATE delivery_areas
SET name = $2,
    price = $3::numeric
WHERE id = $1
RETURNING id, name, price::text
`
	a, err := scanArea(r.pool.QueryRow(ctx, q, area.ID, area.Name, area.Price.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM delivery_areas WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
