package customer

import (
	"context"
	"errors"

	"azharstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

const customerColumns = `id, name, phone_number, town, address_road, address_home, address_block, created_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Town, &c.AddressRoad, &c.AddressHome, &c.AddressBlock, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) List(ctx context.Context, search string) ([]domain.Customer, error) {
	q := `
SELECT ` + customerColumns + `
FROM customers
`
	args := []any{}
	if search != "" {
		q += `WHERE name ILIKE $1 OR phone_number ILIKE $1
`
		args = append(args, "%"+search+"%")
	}
	q += `ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE id = $1
`
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE phone_number = $1
`
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) UpsertByPhone(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (name, phone_number, town, address_road, address_home, address_block)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (phone_number) DO UPDATE SET
    name = EXCLUDED.name,
    town = EXCLUDED.town,
    address_road = EXCLUDED.address_road,
    address_home = EXCLUDED.address_home,
    address_block = EXCLUDED.address_block
RETURNING ` + customerColumns + `
`
	return scanCustomer(r.pool.QueryRow(ctx, q,
		c.Name, c.PhoneNumber, c.Town, c.AddressRoad, c.AddressHome, c.AddressBlock))
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
UPDATE customers
SET name = $2,
    phone_number = $3,
    town = $4,
    address_road = $5,
    address_home = $6,
    address_block = $7
WHERE id = $1
RETURNING ` + customerColumns + `
`
	out, err := scanCustomer(r.pool.QueryRow(ctx, q,
		c.ID, c.Name, c.PhoneNumber, c.Town, c.AddressRoad, c.AddressHome, c.AddressBlock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return out, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
