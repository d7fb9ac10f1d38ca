package storage

import "books_api/internal/models"

// SeedBooks returns the catalog every fresh store starts with.
func SeedBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Computer Science Pro", Author: "codingwithroby", Description: "A very nice book", Rating: 5, PublishedDate: models.IntPtr(2030)},
		{ID: 2, Title: "Be Fast with FastAPI", Author: "codingwithroby", Description: "A great book!", Rating: 5, PublishedDate: models.IntPtr(2030)},
		{ID: 3, Title: "Master Endpoints", Author: "codingwithroby", Description: "A Awesome Book!", Rating: 5, PublishedDate: models.IntPtr(2029)},
		{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book Description", Rating: 2, PublishedDate: models.IntPtr(2028)},
		{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book Description", Rating: 3, PublishedDate: models.IntPtr(1998)},
		{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book Description", Rating: 1, PublishedDate: models.IntPtr(2026)},
	}
}

// Renumber assigns sequential ids starting at 1, in slice order.
// Used for catalogs imported without ids.
func Renumber(books []models.Book) []models.Book {
	out := make([]models.Book, len(books))
	for i, b := range books {
		b.ID = i + 1
		out[i] = b
	}
	return out
}
