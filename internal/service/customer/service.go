package customer

import (
	"context"
	"regexp"
	"strings"

	"azharstore/internal/domain"
	customerrepo "azharstore/internal/repository/customer"
)

var phonePattern = regexp.MustCompile(`^\d{8}$`)

type Service struct {
	repo customerrepo.Repository
}

func New(repo customerrepo.Repository) *Service {
	return &Service{repo: repo}
}

type Input struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Town         string `json:"town"`
	AddressRoad  string `json:"address_road"`
	AddressHome  string `json:"address_home"`
	AddressBlock string `json:"address_block"`
}

func (in Input) toDomain() (domain.Customer, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Customer{}, &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if !phonePattern.MatchString(in.PhoneNumber) {
		return domain.Customer{}, &domain.ValidationError{Field: "phone_number", Message: "phone number must be exactly 8 digits"}
	}
	return domain.Customer{
		Name:         strings.TrimSpace(in.Name),
		PhoneNumber:  in.PhoneNumber,
		Town:         in.Town,
		AddressRoad:  in.AddressRoad,
		AddressHome:  in.AddressHome,
		AddressBlock: in.AddressBlock,
	}, nil
}

func (s *Service) List(ctx context.Context, search string) ([]domain.Customer, error) {
	return s.repo.List(ctx, search)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) GetByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return s.repo.GetByPhone(ctx, phone)
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Customer, error) {
	c, err := in.toDomain()
	if err != nil {
		return nil, err
	}
	return s.repo.UpsertByPhone(ctx, c)
}

func (s *Service) Update(ctx context.Context, id int64, in Input) (*domain.Customer, error) {
	c, err := in.toDomain()
	if err != nil {
		return nil, err
	}
	c.ID = id
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
