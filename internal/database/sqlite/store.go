// Package sqlite provides a file-backed snapshot store for local exploration.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

//go:embed schema.sql
var schema string

// afterUsersLoaded runs between the reads of a snapshot; tests use it to
// interleave writes.
var afterUsersLoaded = func(context.Context) {}

// Store persists the social graph in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) a SQLite store and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Health(ctx context.Context) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	return s.sqlDB.PingContext(ctx)
}

// CountUsers reports how many users are stored.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.sqlDB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// Insert writes users, posts and reactions in one transaction.
func (s *Store) Insert(ctx context.Context, users []*models.User, posts []*models.Post, reactions []*models.Reaction) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, u := range users {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
			u.ID.String(), strings.TrimSpace(u.Name), toMillis(u.CreatedAt),
		); err != nil {
			return fmt.Errorf("inserting user %q: %w", u.Name, err)
		}
	}
	for _, p := range posts {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO posts (id, user_id, body, created_at) VALUES (?, ?, ?, ?)`,
			p.ID.String(), p.UserID.String(), p.Body, toMillis(p.CreatedAt),
		); err != nil {
			return fmt.Errorf("inserting post %s: %w", p.ID, err)
		}
	}
	for _, r := range reactions {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO reactions (id, user_id, post_id, emotion, created_at) VALUES (?, ?, ?, ?, ?)`,
			r.ID.String(), r.UserID.String(), r.PostID.String(), strings.TrimSpace(r.Emotion), toMillis(r.CreatedAt),
		); err != nil {
			return fmt.Errorf("inserting reaction %s: %w", r.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}

// Load reads the whole graph inside one read-only transaction and links it
// into a snapshot. Rows come back in creation order, then insertion order.
func (s *Store) Load(ctx context.Context) (*models.Snapshot, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("begin load: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	users, err := loadUsers(ctx, tx)
	if err != nil {
		return nil, err
	}
	afterUsersLoaded(ctx)
	posts, err := loadPosts(ctx, tx)
	if err != nil {
		return nil, err
	}
	reactions, err := loadReactions(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit load: %w", err)
	}

	snap, err := models.NewSnapshot(users, posts, reactions)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}
	return snap, nil
}

func loadUsers(ctx context.Context, tx *sql.Tx) ([]*models.User, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name, created_at FROM users ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		u := &models.User{}
		var createdAt int64
		if err := rows.Scan(&u.ID, &u.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.CreatedAt = fromMillis(createdAt)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func loadPosts(ctx context.Context, tx *sql.Tx) ([]*models.Post, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, user_id, body, created_at FROM posts ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading posts: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		p := &models.Post{}
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.UserID, &p.Body, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		p.CreatedAt = fromMillis(createdAt)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

func loadReactions(ctx context.Context, tx *sql.Tx) ([]*models.Reaction, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, user_id, post_id, emotion, created_at FROM reactions ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("loading reactions: %w", err)
	}
	defer rows.Close()

	reactions := []*models.Reaction{}
	for rows.Next() {
		r := &models.Reaction{}
		var createdAt int64
		if err := rows.Scan(&r.ID, &r.UserID, &r.PostID, &r.Emotion, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning reaction: %w", err)
		}
		r.CreatedAt = fromMillis(createdAt)
		reactions = append(reactions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reactions: %w", err)
	}
	return reactions, nil
}
