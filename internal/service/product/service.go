package product

import (
	"context"
	"strings"

	"azharstore/internal/domain"
	productrepo "azharstore/internal/repository/product"
	"github.com/shopspring/decimal"
)

type Service struct {
	repo productrepo.Repository
}

func New(repo productrepo.Repository) *Service {
	return &Service{repo: repo}
}

type VariantInput struct {
	ID            int64   `json:"id,omitempty"`
	Name          string  `json:"name"`
	Price         string  `json:"price"`
	StockQuantity *int    `json:"stock_quantity"`
	ImageURL      *string `json:"image_url"`
}

type ImageInput struct {
	ImageURL  string `json:"image_url"`
	IsPrimary bool   `json:"is_primary"`
}

type Input struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         string         `json:"price"`
	StockQuantity *int           `json:"stock_quantity"`
	CategoryID    *int64         `json:"category_id"`
	Images        []ImageInput   `json:"images"`
	Variants      []VariantInput `json:"variants"`
}

func (in Input) toDomain() (domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Product{}, &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	price, err := decimal.NewFromString(in.Price)
	if err != nil || price.IsNegative() {
		return domain.Product{}, &domain.ValidationError{Field: "price", Message: "price must be a non-negative number"}
	}

	p := domain.Product{
		Name:          name,
		Description:   in.Description,
		Price:         price,
		StockQuantity: in.StockQuantity,
		CategoryID:    in.CategoryID,
	}
	for _, img := range in.Images {
		p.Images = append(p.Images, domain.ProductImage{ImageURL: img.ImageURL, IsPrimary: img.IsPrimary})
	}
	for _, v := range in.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return domain.Product{}, &domain.ValidationError{Field: "variants", Message: "variant name is required"}
		}
		vp := decimal.Zero
		if v.Price != "" {
			if vp, err = decimal.NewFromString(v.Price); err != nil || vp.IsNegative() {
				return domain.Product{}, &domain.ValidationError{Field: "variants", Message: "variant price must be a non-negative number"}
			}
		}
		p.Variants = append(p.Variants, domain.ProductVariant{
			ID:            v.ID,
			Name:          v.Name,
			Price:         vp,
			StockQuantity: v.StockQuantity,
			ImageURL:      v.ImageURL,
		})
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, filter productrepo.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Product, error) {
	p, err := in.toDomain()
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Product, error) {
	p, err := in.toDomain()
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
