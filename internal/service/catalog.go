package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"books_api/internal/models"
	"books_api/internal/storage"
)

// Catalog is the business layer shared by the HTTP API and the chat bot.
// Every input is validated before the store is touched.
type Catalog struct {
	store    storage.Store
	validate *validator.Validate
	logger   *zap.Logger
}

func NewCatalog(store storage.Store, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		store:    store,
		validate: sharedValidator,
		logger:   logger.Named("catalog"),
	}
}

func (c *Catalog) List(ctx context.Context) ([]models.Book, error) {
	books, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (c *Catalog) Get(ctx context.Context, id int) (models.Book, error) {
	if err := checkID(id); err != nil {
		return models.Book{}, err
	}
	book, err := c.store.Get(ctx, id)
	if err != nil {
		return models.Book{}, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

// Filter returns books matching rating OR publishedDate. Nil criteria are ignored.
func (c *Catalog) Filter(ctx context.Context, rating, publishedDate *int) ([]models.Book, error) {
	if err := validateStruct(c.validate, filterQuery{Rating: rating, PublishedDate: publishedDate}); err != nil {
		return nil, err
	}
	books, err := c.store.Filter(ctx, models.Filter{Rating: rating, PublishedDate: publishedDate})
	if err != nil {
		return nil, fmt.Errorf("filter books: %w", err)
	}
	return books, nil
}

// Create ignores any id in req; the store assigns one.
func (c *Catalog) Create(ctx context.Context, req models.BookRequest) (models.Book, error) {
	if err := validateStruct(c.validate, req); err != nil {
		return models.Book{}, err
	}

	book := req.Book()
	book.ID = 0
	created, err := c.store.Create(ctx, book)
	if err != nil {
		return models.Book{}, fmt.Errorf("create book: %w", err)
	}

	c.logger.Info("book created", zap.Int("id", created.ID), zap.String("title", created.Title))
	return created, nil
}

// Update replaces the book whose id is req.ID. A request without id matches nothing.
func (c *Catalog) Update(ctx context.Context, req models.BookRequest) error {
	if err := validateStruct(c.validate, req); err != nil {
		return err
	}
	if req.ID == nil {
		return fmt.Errorf("update book: %w", storage.ErrNotFound)
	}

	book := req.Book()
	if err := c.store.Update(ctx, book); err != nil {
		return fmt.Errorf("update book %d: %w", book.ID, err)
	}

	c.logger.Info("book updated", zap.Int("id", book.ID))
	return nil
}

func (c *Catalog) Delete(ctx context.Context, id int) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}

	c.logger.Info("book deleted", zap.Int("id", id))
	return nil
}

// ValidateBook applies the request rules to an already built record,
// e.g. one imported from a seed file.
func ValidateBook(b models.Book) error {
	return validateStruct(sharedValidator, models.RequestFor(b))
}

func checkID(id int) error {
	if id <= 0 {
		return NewValidationError("id", "gt", "must be greater than 0")
	}
	return nil
}
