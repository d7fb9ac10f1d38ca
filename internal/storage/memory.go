package storage

import (
	"context"
	"sync"

	"books_api/internal/models"
)

// Memory keeps the catalog in a slice guarded by a single mutex.
type Memory struct {
	mu    sync.RWMutex
	books []models.Book
}

// NewMemory builds a store holding a copy of seed. Seed ids are kept as given.
func NewMemory(seed []models.Book) *Memory {
	books := make([]models.Book, len(seed))
	for i, b := range seed {
		books[i] = clone(b)
	}
	return &Memory{books: books}
}

func (m *Memory) List(_ context.Context) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Book, len(m.books))
	for i, b := range m.books {
		out[i] = clone(b)
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, id int) (models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(id); i >= 0 {
		return clone(m.books[i]), nil
	}
	return models.Book{}, ErrNotFound
}

func (m *Memory) Filter(_ context.Context, f models.Filter) ([]models.Book, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Book{}
	for _, b := range m.books {
		if f.Matches(b) {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (m *Memory) Create(_ context.Context, book models.Book) (models.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var last *models.Book
	if n := len(m.books); n > 0 {
		last = &m.books[n-1]
	}
	book.ID = NextID(last)
	m.books = append(m.books, clone(book))
	return book, nil
}

func (m *Memory) Update(_ context.Context, book models.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(book.ID)
	if i < 0 {
		return ErrNotFound
	}
	m.books[i] = clone(book)
	return nil
}

func (m *Memory) Delete(_ context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	m.books = append(m.books[:i], m.books[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (m *Memory) indexOf(id int) int {
	for i, b := range m.books {
		if b.ID == id {
			return i
		}
	}
	return -1
}

// clone detaches PublishedDate so callers never share it with the store.
func clone(b models.Book) models.Book {
	if b.PublishedDate != nil {
		b.PublishedDate = models.IntPtr(*b.PublishedDate)
	}
	return b
}
