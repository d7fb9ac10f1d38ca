package models

import "fmt"

// Book is a single catalog record.
type Book struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Description   string `json:"description"`
	Rating        int    `json:"rating"`
	PublishedDate *int   `json:"published_date"`
}

// Filter selects books whose rating OR published date matches.
// A nil criterion matches nothing.
type Filter struct {
	Rating        *int
	PublishedDate *int
}

// Matches reports whether b satisfies at least one of the criteria.
func (f Filter) Matches(b Book) bool {
	if f.Rating != nil && b.Rating == *f.Rating {
		return true
	}
	if f.PublishedDate != nil && b.PublishedDate != nil && *b.PublishedDate == *f.PublishedDate {
		return true
	}
	return false
}

// String renders the book for the chat front end.
func (b Book) String() string {
	year := "n/a"
	if b.PublishedDate != nil {
		year = fmt.Sprint(*b.PublishedDate)
	}
	return fmt.Sprintf("📚 %s\n   Author: %s\n   Rating: %d/5, published: %s\n   ID: %d\n", b.Title, b.Author, b.Rating, year, b.ID)
}

// IntPtr is a helper for building optional fields.
func IntPtr(v int) *int {
	return &v
}
