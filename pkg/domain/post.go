package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested post does not exist
var ErrNotFound = errors.New("not found")

// Post represents a content item that can be liked
type Post struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Permalink string    `json:"permalink,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TopItem represents a row of the most liked widget
type TopItem struct {
	PostID    int64  `json:"post_id"`
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
	Count     int64  `json:"count"`
	Label     string `json:"label"`
}
