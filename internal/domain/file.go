package domain

import "time"

// File records a piece of content pushed to content-addressed storage.
type File struct {
	ID        int64     `json:"id"`
	CID       string    `json:"cid"`
	UserID    *int64    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
