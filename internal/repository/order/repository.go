package order

import (
	"context"

	"azharstore/internal/domain"
)

// ListFilter narrows the order listing.
type ListFilter struct {
	Status     string
	CustomerID *int64
}

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// Create persists the order and its items atomically.
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	// UpdateStatus sets the status and, when comments is non-nil, the
	// fulfilment comments.
	UpdateStatus(ctx context.Context, id int64, status string, comments *string) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}
