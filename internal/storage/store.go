package storage

import (
	"context"
	"errors"

	"books_api/internal/models"
)

// ErrNotFound is returned when no book carries the requested id.
var ErrNotFound = errors.New("book not found")

// Store is the catalog backend used by the service layer.
// Implementations keep books in insertion order.
type Store interface {
	// List returns every book in insertion order.
	List(ctx context.Context) ([]models.Book, error)

	// Get returns the first book with the given id.
	Get(ctx context.Context, id int) (models.Book, error)

	// Filter returns books matching any criterion of f, each at most once.
	Filter(ctx context.Context, f models.Filter) ([]models.Book, error)

	// Create assigns an id to book, appends it and returns the stored copy.
	Create(ctx context.Context, book models.Book) (models.Book, error)

	// Update replaces the book whose id equals book.ID, keeping its position.
	Update(ctx context.Context, book models.Book) error

	// Delete removes the first book with the given id.
	Delete(ctx context.Context, id int) error
}

// NextID applies the allocation policy shared by all backends:
// the id of the last book plus one, or 1 for an empty catalog.
func NextID(last *models.Book) int {
	if last == nil {
		return 1
	}
	return last.ID + 1
}
