package order

import (
	"context"
	"testing"

	"azharstore/internal/checkout"
	"azharstore/internal/domain"
	orderrepo "azharstore/internal/repository/order"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrders struct {
	created *domain.Order
	nextID  int64
}

func (s *stubOrders) List(context.Context, orderrepo.ListFilter) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrders) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubOrders) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	s.nextID++
	o.ID = s.nextID
	s.created = &o
	return &o, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id int64, status string, comments *string) (*domain.Order, error) {
	if s.created == nil || s.created.ID != id {
		return nil, domain.ErrNotFound
	}
	s.created.Status = status
	if comments != nil {
		s.created.Comments = *comments
	}
	return s.created, nil
}

func (s *stubOrders) Delete(context.Context, int64) error { return nil }

type stubProducts struct {
	products map[int64]*domain.Product
	variants map[int64]*domain.ProductVariant
}

func (s *stubProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubProducts) GetVariant(_ context.Context, id int64) (*domain.ProductVariant, error) {
	if v, ok := s.variants[id]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

type stubCustomers struct {
	last *domain.Customer
}

func (s *stubCustomers) UpsertByPhone(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	c.ID = 7
	s.last = &c
	return &c, nil
}

type stubAreas struct {
	areas map[int64]*domain.DeliveryArea
}

func (s *stubAreas) GetByID(_ context.Context, id int64) (*domain.DeliveryArea, error) {
	if a, ok := s.areas[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

type stubSettings struct {
	settings domain.AppSettings
}

func (s *stubSettings) Get(context.Context) (*domain.AppSettings, error) {
	out := s.settings
	return &out, nil
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService() (*Service, *stubOrders, *stubCustomers) {
	orders := &stubOrders{}
	customers := &stubCustomers{}
	products := &stubProducts{
		products: map[int64]*domain.Product{
			1: {ID: 1, Name: "Dates box", Price: dec("10")},
			2: {ID: 2, Name: "Saffron", Price: dec("25.500")},
		},
		variants: map[int64]*domain.ProductVariant{
			// priced variant overrides the product price
			11: {ID: 11, ProductID: 1, Name: "Large", Price: dec("15")},
			// zero-priced variant falls back to the product price
			12: {ID: 12, ProductID: 2, Name: "Default", Price: decimal.Zero},
		},
	}
	areas := &stubAreas{areas: map[int64]*domain.DeliveryArea{
		3: {ID: 3, Name: "Manama", Price: dec("1.500")},
	}}
	settings := &stubSettings{settings: domain.AppSettings{FreeDeliveryThreshold: dec("30")}}
	svc := New(orders, products, customers, areas, settings, zerolog.Nop())
	return svc, orders, customers
}

func ptr(v int64) *int64 { return &v }

func TestSubmitOrderDelivery(t *testing.T) {
	svc, orders, customers := newTestService()

	created, err := svc.SubmitOrder(context.Background(), checkout.OrderPayload{
		Customer: checkout.CustomerDetails{Name: "Fatima", PhoneNumber: "33221100", Town: "Manama"},
		Items: []checkout.PayloadItem{
			{Quantity: 2, ProductID: ptr(1)},
		},
		DeliveryMethod: domain.MethodDelivery,
		DeliveryAreaID: ptr(3),
	})
	require.NoError(t, err)

	// subtotal 20 is below the threshold of 30, so the 1.500 fee applies
	assert.True(t, created.TotalPrice.Equal(dec("21.500")), "got %s", created.TotalPrice)
	assert.True(t, created.DeliveryFee.Equal(dec("1.500")))
	assert.Equal(t, domain.StatusProcessing, created.Status)
	assert.Equal(t, int64(7), created.CustomerID)
	require.NotNil(t, orders.created)
	require.NotNil(t, customers.last)
	assert.Equal(t, "33221100", customers.last.PhoneNumber)
}

func TestSubmitOrderFreeDeliveryAtThreshold(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.SubmitOrder(context.Background(), checkout.OrderPayload{
		Customer: checkout.CustomerDetails{Name: "Ali", PhoneNumber: "33221101"},
		Items: []checkout.PayloadItem{
			{Quantity: 3, ProductID: ptr(1)}, // 30 == threshold
		},
		DeliveryMethod: domain.MethodDelivery,
		DeliveryAreaID: ptr(3),
	})
	require.NoError(t, err)
	assert.True(t, created.DeliveryFee.IsZero())
	assert.True(t, created.TotalPrice.Equal(dec("30")))
}

func TestSubmitOrderVariantPricing(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.SubmitOrder(context.Background(), checkout.OrderPayload{
		Customer: checkout.CustomerDetails{Name: "Sara", PhoneNumber: "33221102"},
		Items: []checkout.PayloadItem{
			{Quantity: 1, ProductVariantID: ptr(11)}, // 15, overrides product price 10
			{Quantity: 1, ProductVariantID: ptr(12)}, // zero, falls back to 25.500
		},
		DeliveryMethod: domain.MethodPickup,
	})
	require.NoError(t, err)
	assert.True(t, created.TotalPrice.Equal(dec("40.500")), "got %s", created.TotalPrice)
	assert.True(t, created.DeliveryFee.IsZero())
}

func TestSubmitOrderRejectsTotalMismatch(t *testing.T) {
	svc, orders, _ := newTestService()

	_, err := svc.SubmitOrder(context.Background(), checkout.OrderPayload{
		Customer:       checkout.CustomerDetails{Name: "Noor", PhoneNumber: "33221103"},
		Items:          []checkout.PayloadItem{{Quantity: 1, ProductID: ptr(1)}},
		TotalPrice:     "9.999",
		DeliveryMethod: domain.MethodPickup,
	})
	assert.ErrorIs(t, err, ErrTotalMismatch)
	assert.Nil(t, orders.created)
}

func TestSubmitOrderAcceptsMatchingTotal(t *testing.T) {
	svc, _, _ := newTestService()

	created, err := svc.SubmitOrder(context.Background(), checkout.OrderPayload{
		Customer:       checkout.CustomerDetails{Name: "Noor", PhoneNumber: "33221103"},
		Items:          []checkout.PayloadItem{{Quantity: 1, ProductID: ptr(1)}},
		TotalPrice:     "10",
		DeliveryMethod: domain.MethodPickup,
	})
	require.NoError(t, err)
	assert.True(t, created.TotalPrice.Equal(dec("10")))
}

func TestSubmitOrderValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	base := checkout.OrderPayload{
		Customer:       checkout.CustomerDetails{Name: "X", PhoneNumber: "33221104"},
		DeliveryMethod: domain.MethodPickup,
	}

	_, err := svc.SubmitOrder(ctx, base)
	assert.ErrorIs(t, err, ErrNoItems)

	p := base
	p.Items = []checkout.PayloadItem{{Quantity: 0, ProductID: ptr(1)}}
	_, err = svc.SubmitOrder(ctx, p)
	assert.ErrorIs(t, err, ErrBadQuantity)

	p = base
	p.Items = []checkout.PayloadItem{{Quantity: 1, ProductID: ptr(1), ProductVariantID: ptr(11)}}
	_, err = svc.SubmitOrder(ctx, p)
	assert.ErrorIs(t, err, ErrBadItem)

	p = base
	p.Items = []checkout.PayloadItem{{Quantity: 1}}
	_, err = svc.SubmitOrder(ctx, p)
	assert.ErrorIs(t, err, ErrBadItem)

	p = base
	p.Items = []checkout.PayloadItem{{Quantity: 1, ProductID: ptr(1)}}
	p.DeliveryMethod = domain.MethodDelivery
	_, err = svc.SubmitOrder(ctx, p)
	assert.ErrorIs(t, err, ErrAreaRequired)

	p.DeliveryMethod = "courier"
	_, err = svc.SubmitOrder(ctx, p)
	assert.ErrorIs(t, err, ErrBadMethod)

	p.DeliveryMethod = domain.MethodPickup
	p.Items = []checkout.PayloadItem{{Quantity: 1, ProductID: ptr(99)}}
	_, err = svc.SubmitOrder(ctx, p)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p = base
	p.Items = []checkout.PayloadItem{{Quantity: 1, ProductID: ptr(1)}}
	p.Customer.PhoneNumber = "123"
	_, err = svc.SubmitOrder(ctx, p)
	var fieldErr *checkout.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "phone_number", fieldErr.Field)
}

func TestUpdateStatus(t *testing.T) {
	svc, orders, _ := newTestService()
	orders.created = &domain.Order{ID: 1, Status: domain.StatusProcessing}

	comments := "leave at the door"
	updated, err := svc.UpdateStatus(context.Background(), 1, domain.StatusShipped, &comments)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
	assert.Equal(t, "leave at the door", updated.Comments)

	updated, err = svc.UpdateStatus(context.Background(), 1, domain.StatusDelivered, nil)
	require.NoError(t, err)
	assert.Equal(t, "leave at the door", updated.Comments)

	_, err = svc.UpdateStatus(context.Background(), 1, "lost", nil)
	assert.ErrorIs(t, err, ErrBadStatus)
}
