package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"azharstore/internal/cart"
	"azharstore/internal/domain"
)

// AreaProvider returns the delivery areas offered at session open. The
// delivery area repository satisfies it.
type AreaProvider interface {
	List(ctx context.Context) ([]domain.DeliveryArea, error)
}

// SettingsProvider returns the storefront settings (free-delivery threshold,
// post-purchase messages). The settings repository satisfies it.
type SettingsProvider interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
}

// Manager opens and tracks checkout sessions. One Flow per session; closing
// the session discards the draft.
type Manager struct {
	mu    sync.Mutex
	flows map[string]*Flow

	areas     AreaProvider
	settings  SettingsProvider
	submitter OrderSubmitter
	carts     *cart.Store
	logger    zerolog.Logger
}

func NewManager(areas AreaProvider, settings SettingsProvider, submitter OrderSubmitter, carts *cart.Store, logger zerolog.Logger) *Manager {
	return &Manager{
		flows:     make(map[string]*Flow),
		areas:     areas,
		settings:  settings,
		submitter: submitter,
		carts:     carts,
		logger:    logger,
	}
}

// Open snapshots the owner's cart and fetches delivery areas and settings.
// The two fetches run concurrently; either failing degrades the session
// (empty area list, disabled free-delivery rule) instead of blocking it.
func (m *Manager) Open(ctx context.Context, owner string) (*Flow, error) {
	lines := m.carts.Lines(owner)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		wg       sync.WaitGroup
		areas    []domain.DeliveryArea
		settings domain.AppSettings
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fetched, err := m.areas.List(ctx)
		if err != nil {
			m.logger.Error().Err(err).Msg("fetch delivery areas failed, continuing with none")
			return
		}
		areas = fetched
	}()
	go func() {
		defer wg.Done()
		fetched, err := m.settings.Get(ctx)
		if err != nil {
			m.logger.Error().Err(err).Msg("fetch app settings failed, continuing with defaults")
			return
		}
		settings = *fetched
	}()
	wg.Wait()

	flow := &Flow{
		ID:        uuid.NewString(),
		Owner:     owner,
		draft:     Draft{Step: StepCustomerDetails},
		lines:     lines,
		areas:     areas,
		settings:  settings,
		submitter: m.submitter,
	}
	flow.onSuccess = func() {
		m.carts.Clear(owner)
	}

	m.mu.Lock()
	m.flows[flow.ID] = flow
	m.mu.Unlock()

	m.logger.Info().Str("session", flow.ID).Int("lines", len(lines)).Int("areas", len(areas)).Msg("checkout session opened")
	return flow, nil
}

func (m *Manager) Get(id string) (*Flow, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	flow, ok := m.flows[id]
	return flow, ok
}

// Close drops the session. The draft is not reset for reuse; the next
// checkout gets a fresh one.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	flow, ok := m.flows[id]
	delete(m.flows, id)
	m.mu.Unlock()

	if ok {
		flow.mu.Lock()
		flow.closed = true
		flow.mu.Unlock()
		m.logger.Info().Str("session", id).Msg("checkout session closed")
	}
}
