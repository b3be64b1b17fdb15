// Package gallery manages uploaded media items.
package gallery

import "time"

// Media types.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// Item is a gallery media row.
type Item struct {
	ID         string    `json:"id"`
	EventID    *string   `json:"event_id"`
	MediaURL   string    `json:"media_url"`
	MediaType  string    `json:"media_type"`
	Caption    *string   `json:"caption"`
	SortOrder  int       `json:"sort_order"`
	UploadedBy string    `json:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at"`
}
