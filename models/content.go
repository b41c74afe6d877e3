package models

import "time"

// GalleryItem represents a portfolio image
type GalleryItem struct {
	ID           string    `json:"id"`
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl"`
	ImageKey     string    `json:"-"`
	IsVisible    bool      `json:"isVisible"`
	DisplayOrder int       `json:"displayOrder"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Testimonial represents a client review
type Testimonial struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating,omitempty"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// SubmitTestimonialRequest represents the request body for submitting a testimonial
// Example: {"author": "Pau", "content": "Loved my emotes!", "rating": 5}
type SubmitTestimonialRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Rating  int    `json:"rating,omitempty"`
}

// Announcement represents a site-wide banner
type Announcement struct {
	ID        string     `json:"id"`
	Message   string     `json:"message"`
	LinkURL   string     `json:"linkUrl,omitempty"`
	IsActive  bool       `json:"isActive"`
	StartsAt  *time.Time `json:"startsAt,omitempty"`
	EndsAt    *time.Time `json:"endsAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// ActiveAt reports whether the announcement should be shown at now.
func (a Announcement) ActiveAt(now time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt != nil && now.Before(*a.StartsAt) {
		return false
	}
	if a.EndsAt != nil && !now.Before(*a.EndsAt) {
		return false
	}
	return true
}
