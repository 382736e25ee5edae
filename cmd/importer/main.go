package main

import (
	"context"
	"flag"
	"os"

	"azharstore/internal/config"
	"azharstore/internal/db"
	"azharstore/internal/importer"
	categoryrepo "azharstore/internal/repository/category"
	productrepo "azharstore/internal/repository/product"
	"github.com/rs/zerolog"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a JSON catalog export")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "importer").Logger()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

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

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", filePath).Msg("open catalog")
	}
	defer f.Close()

	imp := importer.NewJSONImporter(f, productrepo.NewPostgres(pool, logger), categoryrepo.NewPostgres(pool))
	n, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", n).Msg("import failed")
	}
	logger.Info().Int("imported", n).Msg("import complete")
}
