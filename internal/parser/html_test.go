package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"books_api/internal/models"
)

const catalogHTML = `<!doctype html>
<html><body>
<ul>
  <li class="book">
    <span class="title">The Go Programming Language</span>
    <span class="author">Donovan</span>
    <p class="description"> A tour of Go </p>
    <span class="rating">5</span>
    <span class="published">2015</span>
  </li>
  <li class="other"><span class="title">Not a book</span></li>
  <li class="book"><span class="title"></span><span class="rating">x</span></li>
</ul>
<table>
  <tr class="book">
    <td class="title">Concurrency in Go</td>
    <td class="author">Cox-Buday</td>
    <td class="description"></td>
    <td class="rating">4</td>
  </tr>
</table>
</body></html>`

func TestParseCatalog(t *testing.T) {
	books, err := ParseCatalog(strings.NewReader(catalogHTML))
	require.NoError(t, err)

	want := []models.Book{
		{Title: "The Go Programming Language", Author: "Donovan", Description: "A tour of Go", Rating: 5, PublishedDate: models.IntPtr(2015)},
		{Title: "Concurrency in Go", Author: "Cox-Buday", Description: "", Rating: 4},
	}
	assert.Equal(t, want, books)
}

func TestParseCatalogBadRating(t *testing.T) {
	html := `<ul><li class="book"><span class="title">Broken</span><span class="rating">five</span></li></ul>`

	_, err := ParseCatalog(strings.NewReader(html))
	assert.ErrorContains(t, err, `book "Broken": rating`)
}

func TestParseCatalogBadYear(t *testing.T) {
	html := `<ul><li class="book"><span class="title">Broken</span><span class="rating">3</span><span class="published">MCMXCVIII</span></li></ul>`

	_, err := ParseCatalog(strings.NewReader(html))
	assert.ErrorContains(t, err, "published")
}

func TestParseCatalogEmpty(t *testing.T) {
	books, err := ParseCatalog(strings.NewReader("<html></html>"))
	require.NoError(t, err)
	assert.Empty(t, books)
}
