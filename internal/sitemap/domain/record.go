package domain

import "time"

// Record is an archived sitemap.
type Record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URLCount     int       `json:"url_count"`
	XML          []byte    `json:"-"`
	PublishedURL string    `json:"published_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
