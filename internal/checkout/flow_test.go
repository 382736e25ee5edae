package checkout

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"azharstore/internal/cart"
	"azharstore/internal/domain"
)

type stubAreas struct {
	areas []domain.DeliveryArea
	err   error
}

func (s *stubAreas) List(context.Context) ([]domain.DeliveryArea, error) {
	return s.areas, s.err
}

type stubSettings struct {
	settings domain.AppSettings
	err      error
}

func (s *stubSettings) Get(context.Context) (*domain.AppSettings, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := s.settings
	return &out, nil
}

type stubSubmitter struct {
	calls   atomic.Int64
	block   chan struct{}
	err     error
	last    OrderPayload
	lastMu  sync.Mutex
	created *domain.Order
}

func (s *stubSubmitter) SubmitOrder(_ context.Context, payload OrderPayload) (*domain.Order, error) {
	s.calls.Add(1)
	s.lastMu.Lock()
	s.last = payload
	s.lastMu.Unlock()
	if s.block != nil {
		<-s.block
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil {
		return s.created, nil
	}
	return &domain.Order{ID: 1}, nil
}

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestManager(t *testing.T, areas *stubAreas, settings *stubSettings, submitter *stubSubmitter) (*Manager, *cart.Store) {
	t.Helper()
	carts := cart.NewStore()
	return NewManager(areas, settings, submitter, carts, zerolog.Nop()), carts
}

func openFlow(t *testing.T, m *Manager, carts *cart.Store) *Flow {
	t.Helper()
	require.NoError(t, carts.Add("shopper", domain.Product{ID: 7, Price: dec("20")}, nil, 2))
	flow, err := m.Open(context.Background(), "shopper")
	require.NoError(t, err)
	return flow
}

func fillCustomer(t *testing.T, flow *Flow, phone string) {
	t.Helper()
	require.NoError(t, flow.SetCustomer(CustomerDetails{Name: "Fatima", PhoneNumber: phone, Town: "Manama"}))
}

func TestOpenRequiresNonEmptyCart(t *testing.T) {
	m, _ := newTestManager(t, &stubAreas{}, &stubSettings{}, &stubSubmitter{})
	_, err := m.Open(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPhoneValidationGatesFirstStep(t *testing.T) {
	m, carts := newTestManager(t, &stubAreas{}, &stubSettings{}, &stubSubmitter{})
	flow := openFlow(t, m, carts)

	for _, phone := range []string{"1234567", "123456789", "1234567a"} {
		fillCustomer(t, flow, phone)
		step, err := flow.Next()

		var fieldErr *FieldError
		require.ErrorAs(t, err, &fieldErr, "phone %q should be rejected", phone)
		assert.Equal(t, "phone_number", fieldErr.Field)
		assert.Equal(t, StepCustomerDetails, step, "failed validation must not advance")
	}

	fillCustomer(t, flow, "12345678")
	step, err := flow.Next()
	require.NoError(t, err)
	assert.Equal(t, StepDeliveryMethod, step)
}

func TestMissingNameNamesTheField(t *testing.T) {
	m, carts := newTestManager(t, &stubAreas{}, &stubSettings{}, &stubSubmitter{})
	flow := openFlow(t, m, carts)

	require.NoError(t, flow.SetCustomer(CustomerDetails{Name: "   ", PhoneNumber: "12345678"}))
	_, err := flow.Next()

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "name", fieldErr.Field)
}

func TestPickupSkipsAreaStepBothWays(t *testing.T) {
	m, carts := newTestManager(t, &stubAreas{}, &stubSettings{}, &stubSubmitter{})
	flow := openFlow(t, m, carts)

	fillCustomer(t, flow, "12345678")
	_, err := flow.Next()
	require.NoError(t, err)

	require.NoError(t, flow.SelectMethod(domain.MethodPickup))
	step, err := flow.Next()
	require.NoError(t, err)
	assert.Equal(t, StepOrderSummary, step, "pickup jumps straight to the summary")

	step, err = flow.Back()
	require.NoError(t, err)
	assert.Equal(t, StepDeliveryMethod, step, "back from summary mirrors the skip")
}

func TestDeliveryRequiresAreaSelection(t *testing.T) {
	areas := &stubAreas{areas: []domain.DeliveryArea{{ID: 3, Name: "Muharraq", Price: dec("1.5")}}}
	m, carts := newTestManager(t, areas, &stubSettings{}, &stubSubmitter{})
	flow := openFlow(t, m, carts)

	fillCustomer(t, flow, "12345678")
	_, err := flow.Next()
	require.NoError(t, err)

	require.NoError(t, flow.SelectMethod(domain.MethodDelivery))
	step, err := flow.Next()
	require.NoError(t, err)
	require.Equal(t, StepDeliveryArea, step)

	_, err = flow.Next()
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "delivery_area", fieldErr.Field)

	require.NoError(t, flow.SelectArea(3))
	step, err = flow.Next()
	require.NoError(t, err)
	assert.Equal(t, StepOrderSummary, step)
}

func TestSwitchingToPickupClearsArea(t *testing.T) {
	areas := &stubAreas{areas: []domain.DeliveryArea{{ID: 3, Name: "Muharraq", Price: dec("1.5")}}}
	m, carts := newTestManager(t, areas, &stubSettings{}, &stubSubmitter{})
	flow := openFlow(t, m, carts)

	require.NoError(t, flow.SelectMethod(domain.MethodDelivery))
	require.NoError(t, flow.SelectArea(3))
	require.NoError(t, flow.SelectMethod(domain.MethodPickup))

	assert.Nil(t, flow.State().Draft.DeliveryArea)
}

func TestFetchFailuresDegradeSession(t *testing.T) {
	m, carts := newTestManager(t,
		&stubAreas{err: errors.New("areas down")},
		&stubSettings{err: errors.New("settings down")},
		&stubSubmitter{},
	)
	flow := openFlow(t, m, carts)

	state := flow.State()
	assert.Empty(t, state.DeliveryAreas)
	assert.True(t, state.Totals.DeliveryFee.IsZero())
}

func TestDoubleSubmitCallsSubmitterOnce(t *testing.T) {
	submitter := &stubSubmitter{block: make(chan struct{})}
	m, carts := newTestManager(t, &stubAreas{}, &stubSettings{}, submitter)
	flow := openFlow(t, m, carts)

	fillCustomer(t, flow, "12345678")
	_, err := flow.Next()
	require.NoError(t, err)
	require.NoError(t, flow.SelectMethod(domain.MethodPickup))
	_, err = flow.Next()
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, err := flow.Submit(context.Background())
		firstDone <- err
	}()

	// Wait until the first submit reached the submitter, then race a second.
	require.Eventually(t, func() bool { return submitter.calls.Load() == 1 }, waitFor, tick)
	_, err = flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(submitter.block)
	require.NoError(t, <-firstDone)
	assert.Equal(t, int64(1), submitter.calls.Load())
	assert.Equal(t, StepConfirmation, flow.Step())
}

func TestSubmitFailureStaysAtSummaryAndRetries(t *testing.T) {
	submitter := &stubSubmitter{err: errors.New("backend rejected the order")}
	settings := &stubSettings{settings: domain.AppSettings{PickupMessage: "thanks, come pick it up"}}
	m, carts := newTestManager(t, &stubAreas{}, settings, submitter)
	flow := openFlow(t, m, carts)

	fillCustomer(t, flow, "12345678")
	_, err := flow.Next()
	require.NoError(t, err)
	require.NoError(t, flow.SelectMethod(domain.MethodPickup))
	_, err = flow.Next()
	require.NoError(t, err)

	_, err = flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StepOrderSummary, flow.Step())
	assert.Equal(t, "backend rejected the order", flow.State().SubmitError)

	// Retry succeeds once the backend recovers and keeps the entered data.
	submitter.err = nil
	_, err = flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepConfirmation, flow.Step())
	assert.Equal(t, "thanks, come pick it up", flow.State().Message)
	assert.Equal(t, int64(2), submitter.calls.Load())
}

func TestEndToEndDeliveryScenario(t *testing.T) {
	areas := &stubAreas{areas: []domain.DeliveryArea{{ID: 11, Name: "Riffa", Price: dec("5")}}}
	settings := &stubSettings{settings: domain.AppSettings{DeliveryMessage: "on its way"}}
	submitter := &stubSubmitter{}
	m, carts := newTestManager(t, areas, settings, submitter)

	require.NoError(t, carts.Add("shopper", domain.Product{ID: 42, Price: dec("20")}, nil, 2))
	flow, err := m.Open(context.Background(), "shopper")
	require.NoError(t, err)

	fillCustomer(t, flow, "12345678")
	_, err = flow.Next()
	require.NoError(t, err)
	require.NoError(t, flow.SelectMethod(domain.MethodDelivery))
	_, err = flow.Next()
	require.NoError(t, err)
	require.NoError(t, flow.SelectArea(11))
	_, err = flow.Next()
	require.NoError(t, err)

	totals := flow.Totals()
	assert.True(t, totals.Subtotal.Equal(dec("40")))
	assert.True(t, totals.DeliveryFee.Equal(dec("5")))
	assert.True(t, totals.GrandTotal.Equal(dec("45")))

	_, err = flow.Submit(context.Background())
	require.NoError(t, err)

	payload := submitter.last
	require.Len(t, payload.Items, 1)
	require.NotNil(t, payload.Items[0].ProductID)
	assert.Equal(t, int64(42), *payload.Items[0].ProductID)
	assert.Nil(t, payload.Items[0].ProductVariantID)
	assert.Equal(t, 2, payload.Items[0].Quantity)
	assert.Equal(t, "45", payload.TotalPrice)
	assert.Equal(t, domain.MethodDelivery, payload.DeliveryMethod)
	require.NotNil(t, payload.DeliveryAreaID)
	assert.Equal(t, int64(11), *payload.DeliveryAreaID)
	assert.Equal(t, "on its way", flow.State().Message)

	// Successful checkout clears the cart for the next session.
	assert.Empty(t, carts.Lines("shopper"))
}

func TestVariantLineSubmitsVariantIDOnly(t *testing.T) {
	submitter := &stubSubmitter{}
	m, carts := newTestManager(t, &stubAreas{}, &stubSettings{}, submitter)

	variant := &domain.ProductVariant{ID: 9, Price: dec("3")}
	require.NoError(t, carts.Add("shopper", domain.Product{ID: 42, Price: dec("20")}, variant, 1))
	flow, err := m.Open(context.Background(), "shopper")
	require.NoError(t, err)

	fillCustomer(t, flow, "12345678")
	_, err = flow.Next()
	require.NoError(t, err)
	require.NoError(t, flow.SelectMethod(domain.MethodPickup))
	_, err = flow.Next()
	require.NoError(t, err)
	_, err = flow.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, submitter.last.Items, 1)
	assert.Nil(t, submitter.last.Items[0].ProductID)
	require.NotNil(t, submitter.last.Items[0].ProductVariantID)
	assert.Equal(t, int64(9), *submitter.last.Items[0].ProductVariantID)
}

func TestClosedSessionRejectsEverything(t *testing.T) {
	m, carts := newTestManager(t, &stubAreas{}, &stubSettings{}, &stubSubmitter{})
	flow := openFlow(t, m, carts)

	m.Close(flow.ID)
	_, ok := m.Get(flow.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, flow.SetCustomer(CustomerDetails{}), ErrFlowClosed)
	_, err := flow.Next()
	assert.ErrorIs(t, err, ErrFlowClosed)
	_, err = flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrFlowClosed)
}
