package settings

import (
	"context"

	"azharstore/internal/domain"
)

type Repository interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Update(ctx context.Context, s domain.AppSettings) (*domain.AppSettings, error)
	// DeliveryPasswordHash returns the stored bcrypt hash, or "" when no
	// delivery password has been set yet.
	DeliveryPasswordHash(ctx context.Context) (string, error)
	SetDeliveryPasswordHash(ctx context.Context, hash string) error
}
