package settings

import (
	"context"
	"errors"

	"azharstore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Settings live in a key/value table so new knobs never need a migration.
const (
	keyFreeDeliveryThreshold = "free_delivery_threshold"
	keyDeliveryMessage       = "delivery_message"
	keyPickupMessage         = "pickup_message"
	// stored as a bcrypt hash and never exposed through Get
	keyDeliveryPassword = "delivery_password"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Get(ctx context.Context) (*domain.AppSettings, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM system_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var s domain.AppSettings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		switch key {
		case keyFreeDeliveryThreshold:
			d, err := decimal.NewFromString(value)
			if err != nil {
				return nil, err
			}
			s.FreeDeliveryThreshold = d
		case keyDeliveryMessage:
			s.DeliveryMessage = value
		case keyPickupMessage:
			s.PickupMessage = value
		}
	}
	return &s, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, s domain.AppSettings) (*domain.AppSettings, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	pairs := map[string]string{
		keyFreeDeliveryThreshold: s.FreeDeliveryThreshold.String(),
		keyDeliveryMessage:       s.DeliveryMessage,
		keyPickupMessage:         s.PickupMessage,
	}
	for key, value := range pairs {
		if _, err := tx.Exec(ctx, `
INSERT INTO system_settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`, key, value); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) DeliveryPasswordHash(ctx context.Context) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx, `SELECT value FROM system_settings WHERE key = $1`, keyDeliveryPassword).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

func (r *postgresRepo) SetDeliveryPasswordHash(ctx context.Context, hash string) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO system_settings (key, value)
VALUES ($1, $2)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
`, keyDeliveryPassword, hash)
	return err
}
