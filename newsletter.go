package visiontech

import "time"

// NewsletterService is the interface that wraps CRUD over newsletters
type NewsletterService interface {
	Create(n *Newsletter) error
	Find() ([]Newsletter, error)
	FindByID(id int) (*Newsletter, error)
	Update(id int, upd *NewsletterUpdate) (*Newsletter, error)
	Delete(id int) error
}

// Newsletter represents one published issue. Content is a single string of
// the form "<style>{css}</style>{html}" as produced by the visual editor;
// the two parts are concatenated, never stored separately.
type Newsletter struct {
	ID          int       `storm:"id,increment" json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	Date        time.Time `storm:"index" json:"date"`
	ImageURL    string    `json:"imageUrl"`
}

// NewsletterUpdate carries a partial update: nil fields are left unchanged.
type NewsletterUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Content     *string    `json:"content"`
	Author      *string    `json:"author"`
	Date        *time.Time `json:"date"`
	ImageURL    *string    `json:"imageUrl"`
}

type NewsletterRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	ImageURL    string `json:"imageUrl"`
}

// UpdateNewsletterRequest additionally accepts a base64 image payload which
// is hosted through the ImageStore and recorded as imageUrl.
type UpdateNewsletterRequest struct {
	NewsletterUpdate
	Image string `json:"image"`
}
