package product

import (
	"context"

	"azharstore/internal/domain"
)

// ListFilter narrows the product listing. Zero values mean "no filter".
type ListFilter struct {
	CategoryID *int64
	Search     string
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
}
