package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"azharstore/internal/auth"
	"azharstore/internal/cart"
	"azharstore/internal/checkout"
	"azharstore/internal/config"
	"azharstore/internal/db"
	"azharstore/internal/httpserver"
	categoryrepo "azharstore/internal/repository/category"
	customerrepo "azharstore/internal/repository/customer"
	arearepo "azharstore/internal/repository/deliveryarea"
	orderrepo "azharstore/internal/repository/order"
	productrepo "azharstore/internal/repository/product"
	settingsrepo "azharstore/internal/repository/settings"
	categorysvc "azharstore/internal/service/category"
	customersvc "azharstore/internal/service/customer"
	ordersvc "azharstore/internal/service/order"
	productsvc "azharstore/internal/service/product"
	"github.com/rs/zerolog"
)

func newLogger(cfg config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var logger zerolog.Logger
	if cfg.LogFormat == "console" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		logger = zerolog.New(os.Stdout)
	}
	return logger.Level(level).With().Timestamp().Str("service", "api").Logger()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("load config")
	}
	logger := newLogger(cfg)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	productRepo := productrepo.NewPostgres(pool, logger)
	categoryRepo := categoryrepo.NewPostgres(pool)
	customerRepo := customerrepo.NewPostgres(pool)
	orderRepo := orderrepo.NewPostgres(pool, logger)
	areaRepo := arearepo.NewPostgres(pool)
	settingsRepo := settingsrepo.NewPostgres(pool)

	orderService := ordersvc.New(orderRepo, productRepo, customerRepo, areaRepo, settingsRepo, logger)
	carts := cart.NewStore()

	deps := httpserver.Deps{
		ProductSvc:       productsvc.New(productRepo),
		CategorySvc:      categorysvc.New(categoryRepo),
		CustomerSvc:      customersvc.New(customerRepo),
		OrderSvc:         orderService,
		Areas:            areaRepo,
		Settings:         settingsRepo,
		Carts:            carts,
		Checkout:         checkout.NewManager(areaRepo, settingsRepo, orderService, carts, logger),
		Auth:             auth.NewManager(cfg.JWTSecret, cfg.TokenTTL),
		AdminPassword:    cfg.AdminPassword,
		DeliveryPassword: cfg.DeliveryPassword,
		CORSOrigins:      cfg.CORSOrigins,
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, pool, deps)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}
}
