package models

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Body      string      `json:"body"`
	CreatedAt time.Time   `json:"created_at"`
	Owner     *User       `json:"-"`
	Reactions []*Reaction `json:"-"`
}
