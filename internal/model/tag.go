package model

import (
	"time"
)

// Tag is a free-form label attached to tasks
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
