package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"powersite-catalog/internal/config"
	"powersite-catalog/internal/database"
	"powersite-catalog/internal/logger"
	"powersite-catalog/internal/models"
	"powersite-catalog/internal/repository"
	"powersite-catalog/internal/search"
)

// catalogFile es el formato del fichero de datos de ejemplo
type catalogFile struct {
	Brands     []models.Brand     `json:"brands"`
	Categories []models.Category  `json:"categories"`
	Products   []models.Product   `json:"products"`
	SpareParts []models.SparePart `json:"spare_parts"`
}

func main() {
	file := flag.String("file", "data/demo.json", "path to the catalog JSON file")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "err", err)
		os.Exit(1)
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Env: cfg.Env})

	data, err := load(*file)
	if err != nil {
		log.Error("invalid catalog file", "file", *file, "err", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Error("database unavailable", "err", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	repos := repository.New(client.Database(cfg.MongoDB), nil)
	if err := seed(ctx, repos, data); err != nil {
		log.Error("seed failed", "err", err)
		os.Exit(1)
	}

	log.Info("catalog seeded",
		"brands", len(data.Brands),
		"categories", len(data.Categories),
		"products", len(data.Products),
		"spare_parts", len(data.SpareParts),
	)

	// el índice de sugerencias se reconstruye desde Mongo tras la carga
	if cfg.SearchBackend == config.SearchElasticsearch {
		if err := reindex(ctx, cfg, repos.Products, log); err != nil {
			log.Error("search reindex failed", "err", err)
			os.Exit(1)
		}
	}
}

func reindex(ctx context.Context, cfg *config.Config, src search.ProductSource, log *slog.Logger) error {
	engine, err := search.Open(cfg.ElasticsearchURL, cfg.ElasticsearchIndex, log)
	if err != nil {
		return err
	}
	n, err := engine.Sync(ctx, src)
	if err != nil {
		return err
	}
	log.Info("search index synced", "index", cfg.ElasticsearchIndex, "products", n)
	return nil
}

// load lee y valida el fichero completo antes de escribir nada
func load(path string) (*catalogFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data catalogFile
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, models.DecodeError(err)
	}

	for i := range data.Brands {
		if err := data.Brands[i].Validate(); err != nil {
			return nil, fmt.Errorf("brands[%d]: %w", i, err)
		}
	}
	for i := range data.Categories {
		if err := data.Categories[i].Validate(); err != nil {
			return nil, fmt.Errorf("categories[%d]: %w", i, err)
		}
	}
	for i := range data.Products {
		if err := data.Products[i].Validate(); err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	for i := range data.SpareParts {
		if err := data.SpareParts[i].Validate(); err != nil {
			return nil, fmt.Errorf("spare_parts[%d]: %w", i, err)
		}
	}

	return &data, nil
}

func seed(ctx context.Context, repos *repository.Repositories, data *catalogFile) error {
	for i := range data.Brands {
		if err := repos.Brands.Upsert(ctx, &data.Brands[i]); err != nil {
			return err
		}
	}
	for i := range data.Categories {
		if err := repos.Categories.Upsert(ctx, &data.Categories[i]); err != nil {
			return err
		}
	}
	for i := range data.Products {
		if err := repos.Products.Upsert(ctx, &data.Products[i]); err != nil {
			return err
		}
	}
	for i := range data.SpareParts {
		if err := repos.Spares.Upsert(ctx, &data.SpareParts[i]); err != nil {
			return err
		}
	}
	return nil
}
