package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"books_api/internal/config"
	"books_api/internal/db"
	"books_api/internal/models"
	"books_api/internal/parser"
	"books_api/internal/service"
	"books_api/internal/storage"
)

// loadSeed returns the built-in catalog, or the one described by the HTML file at path.
func loadSeed(path string) ([]models.Book, error) {
	if path == "" {
		return storage.SeedBooks(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	books, err := parser.ParseCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	books = storage.Renumber(books)
	for _, b := range books {
		if err := service.ValidateBook(b); err != nil {
			return nil, fmt.Errorf("seed book %d (%q): %w", b.ID, b.Title, err)
		}
	}
	return books, nil
}

// openStore builds the configured backend. The returned close func is never nil.
func openStore(ctx context.Context, cfg *config.Config, seed []models.Book, logger *zap.Logger) (storage.Store, func() error, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		store, err := db.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		seeded, err := store.SeedIfEmpty(ctx, seed)
		if err != nil {
			store.Close()
			return nil, nil, err
		}
		logger.Info("sqlite store ready", zap.String("path", cfg.SQLitePath), zap.Bool("seeded", seeded))
		return store, store.Close, nil
	default:
		logger.Info("memory store ready", zap.Int("books", len(seed)))
		return storage.NewMemory(seed), func() error { return nil }, nil
	}
}
