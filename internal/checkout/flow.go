// Package checkout drives the storefront checkout wizard: a bounded sequence
// of steps collecting customer details, delivery method and area, ending in
// an order submission.
package checkout

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"azharstore/internal/cart"
	"azharstore/internal/domain"
	"azharstore/internal/pricing"
)

// Wizard steps. StepConfirmation is terminal; it is only reachable after a
// successful submission.
type Step int

const (
	StepCustomerDetails Step = iota + 1
	StepDeliveryMethod
	StepDeliveryArea
	StepOrderSummary
	StepConfirmation
)

var (
	ErrSubmitInFlight = errors.New("checkout: submission already in flight")
	ErrNotAtSummary   = errors.New("checkout: submit is only allowed from the order summary step")
	ErrUnknownArea    = errors.New("checkout: unknown delivery area")
	ErrUnknownMethod  = errors.New("checkout: unknown delivery method")
	ErrFlowClosed     = errors.New("checkout: session closed")
	ErrEmptyCart      = errors.New("checkout: cart is empty")
)

var phonePattern = regexp.MustCompile(`^\d{8}$`)

// FieldError is a validation failure surfaced to the presentation layer as
// data, never thrown past the engine boundary.
type FieldError = domain.ValidationError

type CustomerDetails struct {
	Name         string `json:"name"`
	PhoneNumber  string `json:"phone_number"`
	Town         string `json:"town"`
	AddressRoad  string `json:"address_road"`
	AddressHome  string `json:"address_home"`
	AddressBlock string `json:"address_block"`
}

// Draft is the working state of one checkout session. DeliveryArea is nil
// whenever DeliveryMethod is not "delivery".
type Draft struct {
	Customer       CustomerDetails      `json:"customer"`
	DeliveryMethod string               `json:"delivery_method,omitempty"`
	DeliveryArea   *domain.DeliveryArea `json:"delivery_area,omitempty"`
	Step           Step                 `json:"step"`
}

// advance is the forward transition function. All skip logic lives here:
// pickup jumps straight from the method step to the summary.
func advance(d Draft) (Step, *FieldError) {
	switch d.Step {
	case StepCustomerDetails:
		if strings.TrimSpace(d.Customer.Name) == "" {
			return d.Step, &FieldError{Field: "name", Message: "name is required"}
		}
		if !phonePattern.MatchString(d.Customer.PhoneNumber) {
			return d.Step, &FieldError{Field: "phone_number", Message: "phone number must be exactly 8 digits"}
		}
		return StepDeliveryMethod, nil
	case StepDeliveryMethod:
		switch d.DeliveryMethod {
		case domain.MethodPickup:
			return StepOrderSummary, nil
		case domain.MethodDelivery:
			return StepDeliveryArea, nil
		default:
			return d.Step, &FieldError{Field: "delivery_method", Message: "choose delivery or pickup"}
		}
	case StepDeliveryArea:
		if d.DeliveryArea == nil {
			return d.Step, &FieldError{Field: "delivery_area", Message: "choose a delivery area"}
		}
		return StepOrderSummary, nil
	default:
		return d.Step, nil
	}
}

// retreat mirrors the forward skip: going back from the summary with pickup
// selected lands on the method step, not the area step.
func retreat(d Draft) Step {
	if d.Step == StepOrderSummary && d.DeliveryMethod == domain.MethodPickup {
		return StepDeliveryMethod
	}
	if d.Step > StepCustomerDetails && d.Step < StepConfirmation {
		return d.Step - 1
	}
	return d.Step
}

// PayloadItem carries either a product id or a variant id, never both.
type PayloadItem struct {
	Quantity         int    `json:"quantity"`
	ProductID        *int64 `json:"product_id,omitempty"`
	ProductVariantID *int64 `json:"product_variant_id,omitempty"`
}

// OrderPayload is what the submitter receives when the shopper confirms.
type OrderPayload struct {
	Customer       CustomerDetails `json:"customer"`
	Items          []PayloadItem   `json:"order_items"`
	TotalPrice     string          `json:"total_price"`
	DeliveryMethod string          `json:"delivery_method"`
	DeliveryAreaID *int64          `json:"delivery_area_id,omitempty"`
}

// OrderSubmitter accepts the finished payload. The engine calls it exactly
// once per submit action.
type OrderSubmitter interface {
	SubmitOrder(ctx context.Context, payload OrderPayload) (*domain.Order, error)
}

// Flow owns one CheckoutDraft for the duration of a session. All methods are
// safe for concurrent use; transitions are rejected while a submission is in
// flight.
type Flow struct {
	ID    string
	Owner string

	mu         sync.Mutex
	draft      Draft
	lines      []cart.Line
	areas      []domain.DeliveryArea
	settings   domain.AppSettings
	submitting bool
	closed     bool
	submitErr  string
	message    string

	submitter OrderSubmitter
	onSuccess func()
}

// State is the read model handed to the presentation layer.
type State struct {
	ID            string                `json:"id"`
	Draft         Draft                 `json:"draft"`
	Lines         []cart.Line           `json:"lines"`
	DeliveryAreas []domain.DeliveryArea `json:"delivery_areas"`
	Totals        pricing.Totals        `json:"totals"`
	Submitting    bool                  `json:"submitting"`
	SubmitError   string                `json:"submit_error,omitempty"`
	Message       string                `json:"message,omitempty"`
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()

	lines := make([]cart.Line, len(f.lines))
	copy(lines, f.lines)
	areas := make([]domain.DeliveryArea, len(f.areas))
	copy(areas, f.areas)

	return State{
		ID:            f.ID,
		Draft:         f.draft,
		Lines:         lines,
		DeliveryAreas: areas,
		Totals:        f.totalsLocked(),
		Submitting:    f.submitting,
		SubmitError:   f.submitErr,
		Message:       f.message,
	}
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Step
}

// SetCustomer records the fields without validating; validation happens only
// when the shopper attempts to move forward.
func (f *Flow) SetCustomer(c CustomerDetails) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardLocked(); err != nil {
		return err
	}
	f.draft.Customer = c
	return nil
}

// SelectMethod sets the delivery method. Switching away from delivery drops
// any previously chosen area, keeping the draft invariant.
func (f *Flow) SelectMethod(method string) error {
	if method != domain.MethodDelivery && method != domain.MethodPickup {
		return ErrUnknownMethod
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardLocked(); err != nil {
		return err
	}
	f.draft.DeliveryMethod = method
	if method != domain.MethodDelivery {
		f.draft.DeliveryArea = nil
	}
	return nil
}

// SelectArea picks one of the areas fetched at session open.
func (f *Flow) SelectArea(areaID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardLocked(); err != nil {
		return err
	}
	for i := range f.areas {
		if f.areas[i].ID == areaID {
			area := f.areas[i]
			f.draft.DeliveryArea = &area
			return nil
		}
	}
	return ErrUnknownArea
}

// Next attempts the forward transition. A *FieldError return means the step
// did not change; any other error is a session-level problem.
func (f *Flow) Next() (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardLocked(); err != nil {
		return f.draft.Step, err
	}

	next, fieldErr := advance(f.draft)
	if fieldErr != nil {
		return f.draft.Step, fieldErr
	}
	f.draft.Step = next
	return next, nil
}

func (f *Flow) Back() (Step, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.guardLocked(); err != nil {
		return f.draft.Step, err
	}
	f.draft.Step = retreat(f.draft)
	return f.draft.Step, nil
}

// Totals recomputes on every call; nothing is cached or mutated.
func (f *Flow) Totals() pricing.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.totalsLocked()
}

func (f *Flow) totalsLocked() pricing.Totals {
	dc := pricing.DeliveryContext{
		Method:        f.draft.DeliveryMethod,
		FreeThreshold: f.settings.FreeDeliveryThreshold,
	}
	if f.draft.DeliveryArea != nil {
		dc.AreaPrice = f.draft.DeliveryArea.Price
	}

	lines := make([]pricing.Line, 0, len(f.lines))
	for _, l := range f.lines {
		lines = append(lines, pricing.Line{UnitPrice: l.UnitPrice, Quantity: l.Quantity})
	}
	return pricing.ComputeTotals(lines, dc)
}

// Submit builds the order payload and calls the submitter once. A second
// submit while the first is pending returns ErrSubmitInFlight without
// touching the submitter. On failure the flow stays at the summary step with
// the error retained for display; the shopper may retry.
func (f *Flow) Submit(ctx context.Context) (*domain.Order, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFlowClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	if f.draft.Step != StepOrderSummary {
		f.mu.Unlock()
		return nil, ErrNotAtSummary
	}
	f.submitting = true
	f.submitErr = ""
	payload := f.payloadLocked()
	f.mu.Unlock()

	order, err := f.submitter.SubmitOrder(ctx, payload)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.submitErr = err.Error()
		return nil, err
	}
	f.draft.Step = StepConfirmation
	if f.draft.DeliveryMethod == domain.MethodPickup {
		f.message = f.settings.PickupMessage
	} else {
		f.message = f.settings.DeliveryMessage
	}
	if f.onSuccess != nil {
		f.onSuccess()
	}
	return order, nil
}

func (f *Flow) payloadLocked() OrderPayload {
	items := make([]PayloadItem, 0, len(f.lines))
	for _, line := range f.lines {
		item := PayloadItem{Quantity: line.Quantity}
		if line.VariantID != nil {
			id := *line.VariantID
			item.ProductVariantID = &id
		} else {
			id := line.ProductID
			item.ProductID = &id
		}
		items = append(items, item)
	}

	payload := OrderPayload{
		Customer:       f.draft.Customer,
		Items:          items,
		TotalPrice:     f.totalsLocked().GrandTotal.String(),
		DeliveryMethod: f.draft.DeliveryMethod,
	}
	if f.draft.DeliveryMethod == domain.MethodDelivery && f.draft.DeliveryArea != nil {
		id := f.draft.DeliveryArea.ID
		payload.DeliveryAreaID = &id
	}
	return payload
}

func (f *Flow) guardLocked() error {
	if f.closed {
		return ErrFlowClosed
	}
	if f.submitting {
		return ErrSubmitInFlight
	}
	return nil
}
