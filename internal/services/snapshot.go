package services

import (
	"context"
	"fmt"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

// SnapshotProvider yields a consistent, fully linked view of the social graph.
type SnapshotProvider interface {
	Load(ctx context.Context) (*models.Snapshot, error)
}

type SnapshotService struct {
	db DB
}

func NewSnapshotService(db DB) *SnapshotService {
	return &SnapshotService{db: db}
}

const (
	snapshotTxQuery = `SET TRANSACTION ISOLATION LEVEL REPEATABLE READ READ ONLY`
	usersQuery      = `SELECT id, name, created_at FROM users ORDER BY created_at, id`
	postsQuery      = `SELECT id, user_id, body, created_at FROM posts ORDER BY created_at, id`
	reactionsQuery  = `SELECT id, user_id, post_id, emotion, created_at FROM reactions ORDER BY created_at, id`
)

// Load reads users, posts and reactions inside one read-only transaction so
// the three result sets agree with each other. The connection is released
// before the snapshot is linked.
func (s *SnapshotService) Load(ctx context.Context) (*models.Snapshot, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning snapshot: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, snapshotTxQuery); err != nil {
		return nil, fmt.Errorf("configuring snapshot: %w", err)
	}

	users, err := loadUsers(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	posts, err := loadPosts(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	reactions, err := loadReactions(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("loading reactions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing snapshot: %w", err)
	}

	snap, err := models.NewSnapshot(users, posts, reactions)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	return snap, nil
}

func loadUsers(ctx context.Context, q DBConn) ([]*models.User, error) {
	rows, err := q.Query(ctx, usersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func loadPosts(ctx context.Context, q DBConn) ([]*models.Post, error) {
	rows, err := q.Query(ctx, postsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		p := &models.Post{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.Body, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func loadReactions(ctx context.Context, q DBConn) ([]*models.Reaction, error) {
	rows, err := q.Query(ctx, reactionsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reactions := []*models.Reaction{}
	for rows.Next() {
		r := &models.Reaction{}
		if err := rows.Scan(&r.ID, &r.UserID, &r.PostID, &r.Emotion, &r.CreatedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}
