package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is an immutable, fully linked view of the social graph used for a
// single computation pass. Callers must not mutate it after NewSnapshot.
type Snapshot struct {
	Users     []*User
	Posts     []*Post
	Reactions []*Reaction

	byName map[string]*User
}

// NewSnapshot links flat rows into an object graph. Each user's Posts and
// Reactions, and each post's Reactions, are rebuilt in input order.
func NewSnapshot(users []*User, posts []*Post, reactions []*Reaction) (*Snapshot, error) {
	usersByID := make(map[uuid.UUID]*User, len(users))
	byName := make(map[string]*User, len(users))
	for _, u := range users {
		if u == nil {
			return nil, fmt.Errorf("%w: nil user", ErrInvalidSnapshot)
		}
		if _, exists := usersByID[u.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate user id %s", ErrInvalidSnapshot, u.ID)
		}
		if _, exists := byName[u.Name]; exists {
			return nil, fmt.Errorf("%w: duplicate user name %q", ErrInvalidSnapshot, u.Name)
		}
		usersByID[u.ID] = u
		byName[u.Name] = u
		u.Posts = nil
		u.Reactions = nil
	}

	postsByID := make(map[uuid.UUID]*Post, len(posts))
	for _, p := range posts {
		if p == nil {
			return nil, fmt.Errorf("%w: nil post", ErrInvalidSnapshot)
		}
		if _, exists := postsByID[p.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate post id %s", ErrInvalidSnapshot, p.ID)
		}
		owner, ok := usersByID[p.UserID]
		if !ok {
			return nil, fmt.Errorf("%w: post %s has unknown owner %s", ErrInvalidSnapshot, p.ID, p.UserID)
		}
		p.Owner = owner
		p.Reactions = nil
		owner.Posts = append(owner.Posts, p)
		postsByID[p.ID] = p
	}

	seen := make(map[uuid.UUID]struct{}, len(reactions))
	for _, r := range reactions {
		if r == nil {
			return nil, fmt.Errorf("%w: nil reaction", ErrInvalidSnapshot)
		}
		if _, exists := seen[r.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate reaction id %s", ErrInvalidSnapshot, r.ID)
		}
		seen[r.ID] = struct{}{}
		author, ok := usersByID[r.UserID]
		if !ok {
			return nil, fmt.Errorf("%w: reaction %s has unknown author %s", ErrInvalidSnapshot, r.ID, r.UserID)
		}
		target, ok := postsByID[r.PostID]
		if !ok {
			return nil, fmt.Errorf("%w: reaction %s targets unknown post %s", ErrInvalidSnapshot, r.ID, r.PostID)
		}
		r.Author = author
		r.Target = target
		author.Reactions = append(author.Reactions, r)
		target.Reactions = append(target.Reactions, r)
	}

	return &Snapshot{
		Users:     users,
		Posts:     posts,
		Reactions: reactions,
		byName:    byName,
	}, nil
}

// UserByName returns the single user carrying name, if any.
func (s *Snapshot) UserByName(name string) (*User, bool) {
	if s == nil {
		return nil, false
	}
	if s.byName == nil {
		for _, u := range s.Users {
			if u.Name == name {
				return u, true
			}
		}
		return nil, false
	}
	u, ok := s.byName[name]
	return u, ok
}

// IsEmpty reports whether the snapshot holds no entities at all.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (len(s.Users) == 0 && len(s.Posts) == 0 && len(s.Reactions) == 0)
}
