package deliveryarea

import (
	"context"

	"azharstore/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.DeliveryArea, error)
	GetByID(ctx context.Context, id int64) (*domain.DeliveryArea, error)
	Create(ctx context.Context, area domain.DeliveryArea) (*domain.DeliveryArea, error)
	Update(ctx context.Context, area domain.DeliveryArea) (*domain.DeliveryArea, error)
	Delete(ctx context.Context, id int64) error
}
