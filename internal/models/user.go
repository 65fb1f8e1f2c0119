package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a member of the social graph. Posts and Reactions are populated by
// the snapshot provider; they are never fetched on demand.
type User struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	CreatedAt time.Time   `json:"created_at"`
	Posts     []*Post     `json:"-"`
	Reactions []*Reaction `json:"-"`
}
