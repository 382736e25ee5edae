// Package httpserver exposes the storefront, checkout and admin APIs over
// HTTP.
package httpserver

import (
	"context"
	"net/http"
	"time"

	"azharstore/internal/auth"
	"azharstore/internal/cart"
	"azharstore/internal/checkout"
	"azharstore/internal/domain"
	categorysvc "azharstore/internal/service/category"
	customersvc "azharstore/internal/service/customer"
	ordersvc "azharstore/internal/service/order"
	productsvc "azharstore/internal/service/product"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// areaStore is the slice of the delivery area repository the handlers need.
type areaStore interface {
	List(ctx context.Context) ([]domain.DeliveryArea, error)
	GetByID(ctx context.Context, id int64) (*domain.DeliveryArea, error)
	Create(ctx context.Context, area domain.DeliveryArea) (*domain.DeliveryArea, error)
	Update(ctx context.Context, area domain.DeliveryArea) (*domain.DeliveryArea, error)
	Delete(ctx context.Context, id int64) error
}

type settingsStore interface {
	Get(ctx context.Context) (*domain.AppSettings, error)
	Update(ctx context.Context, s domain.AppSettings) (*domain.AppSettings, error)
	DeliveryPasswordHash(ctx context.Context) (string, error)
	SetDeliveryPasswordHash(ctx context.Context, hash string) error
}

// Deps carries everything the router needs.
type Deps struct {
	ProductSvc  *productsvc.Service
	CategorySvc *categorysvc.Service
	CustomerSvc *customersvc.Service
	OrderSvc    *ordersvc.Service
	Areas       areaStore
	Settings    settingsStore

	Carts    *cart.Store
	Checkout *checkout.Manager

	Auth             *auth.Manager
	AdminPassword    string
	DeliveryPassword string
	CORSOrigins      []string
}

type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
	db         *pgxpool.Pool
}

func New(addr string, logger zerolog.Logger, db *pgxpool.Pool, deps Deps) *Server {
	router := buildRouter(logger, db, deps)

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
		db:     db,
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
