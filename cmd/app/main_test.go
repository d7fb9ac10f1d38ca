package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"books_api/internal/config"
	"books_api/internal/models"
	"books_api/internal/storage"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSeedDefault(t *testing.T) {
	books, err := loadSeed("")
	require.NoError(t, err)
	assert.Equal(t, storage.SeedBooks(), books)
}

func TestLoadSeedFromHTML(t *testing.T) {
	path := writeFile(t, "catalog.html", `<ul>
<li class="book"><b class="title">Learning Go</b><i class="author">Bodner</i><span class="rating">4</span><span class="published">2021</span></li>
<li class="book"><b class="title">Go in Action</b><i class="author">Kennedy</i><span class="description">short</span><span class="rating">3</span></li>
</ul>`)

	books, err := loadSeed(path)
	require.NoError(t, err)
	assert.Equal(t, []models.Book{
		{ID: 1, Title: "Learning Go", Author: "Bodner", Rating: 4, PublishedDate: models.IntPtr(2021)},
		{ID: 2, Title: "Go in Action", Author: "Kennedy", Description: "short", Rating: 3},
	}, books)
}

func TestLoadSeedRejectsInvalidBook(t *testing.T) {
	path := writeFile(t, "catalog.html", `<ul><li class="book"><b class="title">Go</b><i class="author">X</i><span class="rating">4</span></li></ul>`)

	_, err := loadSeed(path)
	assert.ErrorContains(t, err, "title")
}

func TestLoadSeedMissingFile(t *testing.T) {
	_, err := loadSeed(filepath.Join(t.TempDir(), "absent.html"))
	assert.Error(t, err)
}

func TestOpenStoreMemory(t *testing.T) {
	cfg := &config.Config{StoreDriver: config.DriverMemory}

	store, closeStore, err := openStore(context.Background(), cfg, storage.SeedBooks(), zap.NewNop())
	require.NoError(t, err)
	defer closeStore()

	books, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, books, 6)
}

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "books.db"),
	}

	store, closeStore, err := openStore(context.Background(), cfg, storage.SeedBooks(), zap.NewNop())
	require.NoError(t, err)
	defer closeStore()

	book, err := store.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "HP2", book.Title)
}
