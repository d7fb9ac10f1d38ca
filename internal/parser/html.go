package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"books_api/internal/models"
)

// ParseCatalog reads an HTML catalog and returns its books in document order.
// Each li.book or tr.book element is one record; its fields live in children
// with classes title, author, description, rating and published.
// Returned books carry no ids.
func ParseCatalog(body io.Reader) ([]models.Book, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	var (
		books   []models.Book
		scanErr error
	)

	doc.Find("li.book, tr.book").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := field(s, ".title")
		if title == "" {
			return true
		}

		book := models.Book{
			Title:       title,
			Author:      field(s, ".author"),
			Description: field(s, ".description"),
		}

		rating, err := strconv.Atoi(field(s, ".rating"))
		if err != nil {
			scanErr = fmt.Errorf("book %q: rating: %w", title, err)
			return false
		}
		book.Rating = rating

		if published := field(s, ".published"); published != "" {
			year, err := strconv.Atoi(published)
			if err != nil {
				scanErr = fmt.Errorf("book %q: published: %w", title, err)
				return false
			}
			book.PublishedDate = &year
		}

		books = append(books, book)
		return true
	})

	if scanErr != nil {
		return nil, scanErr
	}
	return books, nil
}

func field(s *goquery.Selection, selector string) string {
	return strings.TrimSpace(s.Find(selector).First().Text())
}
