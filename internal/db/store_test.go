package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"books_api/internal/models"
	"books_api/internal/storage"
)

func openSeeded(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "books.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	seeded, err := s.SeedIfEmpty(context.Background(), storage.SeedBooks())
	require.NoError(t, err)
	require.True(t, seeded)
	return s, path
}

func bookIDs(books []models.Book) []int {
	out := make([]int, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestSeedAndList(t *testing.T) {
	s, _ := openSeeded(t)

	books, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storage.SeedBooks(), books)
}

func TestSeedIfEmptySkipsPopulatedTable(t *testing.T) {
	s, path := openSeeded(t)
	ctx := context.Background()

	_, err := s.Create(ctx, models.Book{Title: "abc", Author: "a", Description: "", Rating: 2})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	seeded, err := reopened.SeedIfEmpty(ctx, storage.SeedBooks())
	require.NoError(t, err)
	assert.False(t, seeded)

	books, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, bookIDs(books))
}

func TestCreateGetDelete(t *testing.T) {
	s, _ := openSeeded(t)
	ctx := context.Background()

	in := models.Book{Title: "Go Book", Author: "R", Description: "d", Rating: 4}
	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)

	got, err := s.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, created, got)
	assert.Nil(t, got.PublishedDate)

	require.NoError(t, s.Delete(ctx, 7))
	_, err = s.Get(ctx, 7)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 7), storage.ErrNotFound)
}

func TestCreateFollowsLastRecord(t *testing.T) {
	s, _ := openSeeded(t)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, 6))
	created, err := s.Create(ctx, models.Book{Title: "abc", Author: "a", Rating: 1})
	require.NoError(t, err)
	assert.Equal(t, 6, created.ID)

	books, _ := s.List(ctx)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, bookIDs(books))
}

func TestUpdateKeepsPosition(t *testing.T) {
	s, _ := openSeeded(t)
	ctx := context.Background()

	upd := models.Book{ID: 2, Title: "Renamed", Author: "someone", Description: "x", Rating: 3}
	require.NoError(t, s.Update(ctx, upd))

	books, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, bookIDs(books))
	assert.Equal(t, upd, books[1])

	err = s.Update(ctx, models.Book{ID: 999, Title: "X", Author: "Y", Description: "z", Rating: 1})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFilter(t *testing.T) {
	s, _ := openSeeded(t)
	ctx := context.Background()

	got, err := s.Filter(ctx, models.Filter{Rating: models.IntPtr(5), PublishedDate: models.IntPtr(1998)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 5}, bookIDs(got))

	got, err = s.Filter(ctx, models.Filter{Rating: models.IntPtr(5), PublishedDate: models.IntPtr(2030)})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, bookIDs(got))

	got, err = s.Filter(ctx, models.Filter{})
	require.NoError(t, err)
	assert.Empty(t, got)
}
