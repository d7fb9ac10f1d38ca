package models

// BookRequest is the create/update payload. Pointers tell a missing field
// apart from a zero value; the validate tags carry the field constraints.
type BookRequest struct {
	ID            *int    `json:"id"`
	Title         *string `json:"title" validate:"required,min=3"`
	Author        *string `json:"author" validate:"required,min=1"`
	Description   *string `json:"description" validate:"required,max=100"`
	Rating        *int    `json:"rating" validate:"required,gt=0,lt=6"`
	PublishedDate *int    `json:"published_date" validate:"omitempty,gt=1000,lt=2040"`
}

// Book builds the record described by the request. Call only after validation.
func (r BookRequest) Book() Book {
	b := Book{
		Title:         *r.Title,
		Author:        *r.Author,
		Description:   *r.Description,
		Rating:        *r.Rating,
		PublishedDate: r.PublishedDate,
	}
	if r.ID != nil {
		b.ID = *r.ID
	}
	return b
}

// RequestFor is the inverse of BookRequest.Book.
func RequestFor(b Book) BookRequest {
	id := b.ID
	return BookRequest{
		ID:            &id,
		Title:         &b.Title,
		Author:        &b.Author,
		Description:   &b.Description,
		Rating:        &b.Rating,
		PublishedDate: b.PublishedDate,
	}
}
