package models

import (
	"time"

	"github.com/google/uuid"
)

// Reaction records one user's emotional response to a post. Emotion is drawn
// from an open set of short labels ("joy", "love", ...).
type Reaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	PostID    uuid.UUID `json:"post_id"`
	Emotion   string    `json:"emotion"`
	CreatedAt time.Time `json:"created_at"`
	Author    *User     `json:"-"`
	Target    *Post     `json:"-"`
}
