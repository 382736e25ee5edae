package customer

import (
	"context"

	"azharstore/internal/domain"
)

type Repository interface {
	List(ctx context.Context, search string) ([]domain.Customer, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Customer, error)
	// UpsertByPhone creates the customer or refreshes the stored details for
	// an existing phone number.
	UpsertByPhone(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}
