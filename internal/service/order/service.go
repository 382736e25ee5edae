package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"azharstore/internal/checkout"
	"azharstore/internal/domain"
	orderrepo "azharstore/internal/repository/order"
	"azharstore/internal/pricing"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrNoItems       = errors.New("order must contain at least one item")
	ErrAreaRequired  = errors.New("delivery orders require a delivery area")
	ErrBadStatus     = errors.New("unknown order status")
	ErrBadMethod     = errors.New("unknown delivery method")
	ErrBadItem       = errors.New("order item must reference a product or a variant, not both")
	ErrBadQuantity   = errors.New("order item quantity must be positive")
	ErrTotalMismatch = errors.New("submitted total does not match the computed total")
)

var phonePattern = regexp.MustCompile(`^\d{8}$`)

type orderRepo interface {
	List(ctx context.Context, filter orderrepo.ListFilter) ([]domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status string, comments *string) (*domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type productRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetVariant(ctx context.Context, id int64) (*domain.ProductVariant, error)
}

type customerRepo interface {
	UpsertByPhone(ctx context.Context, c domain.Customer) (*domain.Customer, error)
}

type areaRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.DeliveryArea, error)
}

type settingsRepo interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
}

type Service struct {
	orders    orderRepo
	products  productRepo
	customers customerRepo
	areas     areaRepo
	settings  settingsRepo
	logger    zerolog.Logger
}

func New(orders orderRepo, products productRepo, customers customerRepo, areas areaRepo, settings settingsRepo, logger zerolog.Logger) *Service {
	return &Service{
		orders:    orders,
		products:  products,
		customers: customers,
		areas:     areas,
		settings:  settings,
		logger:    logger.With().Str("component", "order_service").Logger(),
	}
}

func (s *Service) List(ctx context.Context, filter orderrepo.ListFilter) ([]domain.Order, error) {
	return s.orders.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, comments *string) (*domain.Order, error) {
	switch status {
	case domain.StatusProcessing, domain.StatusShipped, domain.StatusDelivered, domain.StatusCancelled:
	default:
		return nil, ErrBadStatus
	}
	return s.orders.UpdateStatus(ctx, id, status, comments)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.orders.Delete(ctx, id)
}

// SubmitOrder accepts a checkout payload, re-resolves every unit price from
// the catalog and recomputes the totals. The submitted total is advisory; a
// mismatch rejects the order rather than trusting the client.
func (s *Service) SubmitOrder(ctx context.Context, payload checkout.OrderPayload) (*domain.Order, error) {
	if len(payload.Items) == 0 {
		return nil, ErrNoItems
	}
	if payload.DeliveryMethod != domain.MethodDelivery && payload.DeliveryMethod != domain.MethodPickup {
		return nil, ErrBadMethod
	}
	// the checkout wizard validates these too, but the raw order endpoint
	// reaches this code directly
	if strings.TrimSpace(payload.Customer.Name) == "" {
		return nil, &checkout.FieldError{Field: "name", Message: "name is required"}
	}
	if !phonePattern.MatchString(payload.Customer.PhoneNumber) {
		return nil, &checkout.FieldError{Field: "phone_number", Message: "phone number must be exactly 8 digits"}
	}

	lines := make([]pricing.Line, 0, len(payload.Items))
	items := make([]domain.OrderItem, 0, len(payload.Items))
	for _, it := range payload.Items {
		if it.Quantity < 1 {
			return nil, ErrBadQuantity
		}
		if (it.ProductID == nil) == (it.ProductVariantID == nil) {
			return nil, ErrBadItem
		}

		var unit decimal.Decimal
		switch {
		case it.ProductVariantID != nil:
			variant, err := s.products.GetVariant(ctx, *it.ProductVariantID)
			if err != nil {
				return nil, fmt.Errorf("variant %d: %w", *it.ProductVariantID, err)
			}
			product, err := s.products.GetByID(ctx, variant.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product %d: %w", variant.ProductID, err)
			}
			unit = pricing.ResolveUnitPrice(*product, variant)
		default:
			product, err := s.products.GetByID(ctx, *it.ProductID)
			if err != nil {
				return nil, fmt.Errorf("product %d: %w", *it.ProductID, err)
			}
			unit = pricing.ResolveUnitPrice(*product, nil)
		}

		lines = append(lines, pricing.Line{UnitPrice: unit, Quantity: it.Quantity})
		items = append(items, domain.OrderItem{
			ProductID:        it.ProductID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
		})
	}

	dc := pricing.DeliveryContext{Method: payload.DeliveryMethod}
	var areaID *int64
	if payload.DeliveryMethod == domain.MethodDelivery {
		if payload.DeliveryAreaID == nil {
			return nil, ErrAreaRequired
		}
		area, err := s.areas.GetByID(ctx, *payload.DeliveryAreaID)
		if err != nil {
			return nil, fmt.Errorf("delivery area %d: %w", *payload.DeliveryAreaID, err)
		}
		dc.AreaPrice = area.Price
		areaID = &area.ID
	}
	if settings, err := s.settings.Get(ctx); err == nil {
		dc.FreeThreshold = settings.FreeDeliveryThreshold
	} else {
		s.logger.Warn().Err(err).Msg("settings unavailable, free delivery threshold disabled")
	}

	totals := pricing.ComputeTotals(lines, dc)
	if payload.TotalPrice != "" {
		submitted, err := decimal.NewFromString(payload.TotalPrice)
		if err != nil || !submitted.Equal(totals.GrandTotal) {
			s.logger.Warn().Str("submitted", payload.TotalPrice).Str("computed", totals.GrandTotal.String()).Msg("total mismatch")
			return nil, ErrTotalMismatch
		}
	}

	cust, err := s.customers.UpsertByPhone(ctx, domain.Customer{
		Name:         payload.Customer.Name,
		PhoneNumber:  payload.Customer.PhoneNumber,
		Town:         payload.Customer.Town,
		AddressRoad:  payload.Customer.AddressRoad,
		AddressHome:  payload.Customer.AddressHome,
		AddressBlock: payload.Customer.AddressBlock,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert customer: %w", err)
	}

	order := domain.Order{
		CustomerID:     cust.ID,
		Status:         domain.StatusProcessing,
		ShippingMethod: payload.DeliveryMethod,
		DeliveryAreaID: areaID,
		DeliveryFee:    totals.DeliveryFee,
		TotalPrice:     totals.GrandTotal,
		Items:          items,
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("order_id", created.ID).Str("total", created.TotalPrice.String()).Msg("order submitted")
	return created, nil
}
