package main

import (
	"context"
	"flag"
	"os"

	"azharstore/internal/config"
	"azharstore/internal/db"
	"azharstore/internal/migrate"
	"github.com/rs/zerolog"
)

func main() {
	rollback := flag.Bool("rollback", false, "revert the most recent migration instead of applying")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "migrate").Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if *rollback {
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("rollback migration")
		}
		logger.Info().Msg("last migration rolled back")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatal().Err(err).Msg("apply migrations")
	}
	logger.Info().Msg("migrations applied")
}
