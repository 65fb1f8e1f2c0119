package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/HammerMeetNail/socialexplorer/internal/analytics"
	"github.com/HammerMeetNail/socialexplorer/internal/models"
)

var (
	ErrUnknownExplorerMode = errors.New("unknown explorer mode")
	ErrUserNotFound        = errors.New("user not found")
)

// ExplorerMode selects which listing the explorer renders.
type ExplorerMode int

const (
	ExplorerDashboard ExplorerMode = iota
	ExplorerUsers
	ExplorerPosts
	ExplorerReactions
	ExplorerPostsByUser
)

var explorerModeNames = [...]string{
	ExplorerDashboard:   "dashboard",
	ExplorerUsers:       "users",
	ExplorerPosts:       "posts",
	ExplorerReactions:   "reactions",
	ExplorerPostsByUser: "posts-by-user",
}

func (m ExplorerMode) String() string {
	if m < 0 || int(m) >= len(explorerModeNames) {
		return fmt.Sprintf("ExplorerMode(%d)", int(m))
	}
	return explorerModeNames[m]
}

func ParseExplorerMode(s string) (ExplorerMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range explorerModeNames {
		if n == name {
			return ExplorerMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownExplorerMode, s)
}

const excerptRunes = 40

const (
	NoticeNoUsers     = "No users registered."
	NoticeNoPosts     = "No posts registered."
	NoticeNoReactions = "No reactions registered."
)

type UserDetail struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Posts     []string  `json:"posts"`
	Reactions []string  `json:"reactions"`
}

type PostDetail struct {
	ID           uuid.UUID `json:"id"`
	Body         string    `json:"body"`
	Owner        string    `json:"owner"`
	Reactions    []string  `json:"reactions"`
	HasReactions bool      `json:"has_reactions"`
}

type ReactionLine struct {
	Author  string `json:"author"`
	Post    string `json:"post"`
	Emotion string `json:"emotion"`
}

type UsersView struct {
	Users  []UserDetail `json:"users"`
	Notice string       `json:"notice,omitempty"`
}

type PostsView struct {
	Posts  []PostDetail `json:"posts"`
	Notice string       `json:"notice,omitempty"`
}

type ReactionsView struct {
	Reactions []ReactionLine `json:"reactions"`
	Notice    string         `json:"notice,omitempty"`
}

// UserPostsView lists one user's posts.
type UserPostsView struct {
	User   string       `json:"user"`
	Posts  []PostDetail `json:"posts"`
	Notice string       `json:"notice,omitempty"`
}

// UserMetric is a per-user metric row keyed by name for transport.
type UserMetric struct {
	Name      string `json:"name"`
	Posts     int    `json:"posts"`
	Reactions int    `json:"reactions"`
}

type MetricsView struct {
	Users                   []UserMetric     `json:"users"`
	Totals                  analytics.Totals `json:"totals"`
	AveragePostsPerUser     float64          `json:"average_posts_per_user"`
	AverageReactionsPerUser float64          `json:"average_reactions_per_user"`
	MostActiveUser          string           `json:"most_active_user,omitempty"`
	Top                     []UserMetric     `json:"top"`
	RankedBy                string           `json:"ranked_by"`
}

// DashboardRequest carries the chart choice and its tuning knobs.
type DashboardRequest struct {
	Mode     analytics.Mode
	TopK     int
	Metric   analytics.Metric
	Language language.Tag
}

type DashboardView struct {
	Chart     analytics.ChartSpec `json:"chart"`
	Summary   analytics.Summary   `json:"summary"`
	Headlines []string            `json:"headlines"`
	// Empty is set when the store holds no users, posts or reactions at all.
	Empty bool `json:"empty"`
}

// ExplorerService renders dashboards and listings from a fresh snapshot per
// call.
type ExplorerService struct {
	provider SnapshotProvider
}

func NewExplorerService(provider SnapshotProvider) *ExplorerService {
	return &ExplorerService{provider: provider}
}

func (s *ExplorerService) load(ctx context.Context) (*models.Snapshot, error) {
	snap, err := s.provider.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}
	if snap == nil {
		snap = &models.Snapshot{}
	}
	return snap, nil
}

func (s *ExplorerService) Dashboard(ctx context.Context, req DashboardRequest) (*DashboardView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	chart, err := analytics.BuildView(req.Mode, snap,
		analytics.WithTopK(req.TopK),
		analytics.WithRankMetric(req.Metric),
	)
	if err != nil {
		return nil, err
	}

	summary := analytics.Summarize(snap)
	return &DashboardView{
		Chart:     chart,
		Summary:   summary,
		Headlines: summary.Headlines(req.Language),
		Empty:     snap.IsEmpty(),
	}, nil
}

// Metrics returns the per-user aggregate plus the top k users by metric.
func (s *ExplorerService) Metrics(ctx context.Context, k int, metric analytics.Metric) (*MetricsView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	m := analytics.Aggregate(snap.Users)
	view := &MetricsView{
		Users:                   userMetrics(m.PerUser),
		Totals:                  m.Totals,
		AveragePostsPerUser:     m.AveragePostsPerUser,
		AverageReactionsPerUser: m.AverageReactionsPerUser,
		Top:                     userMetrics(analytics.TopK(m.PerUser, metric, k)),
		RankedBy:                metric.String(),
	}
	if m.MostActiveUser != nil {
		view.MostActiveUser = m.MostActiveUser.Name
	}
	return view, nil
}

func userMetrics(rows []analytics.MetricRow) []UserMetric {
	out := make([]UserMetric, 0, len(rows))
	for _, row := range rows {
		out = append(out, UserMetric{
			Name:      row.User.Name,
			Posts:     row.PostCount,
			Reactions: row.ReactionCount,
		})
	}
	return out
}

func (s *ExplorerService) Users(ctx context.Context) (*UsersView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	view := &UsersView{Users: make([]UserDetail, 0, len(snap.Users))}
	if len(snap.Users) == 0 {
		view.Notice = NoticeNoUsers
		return view, nil
	}
	for _, u := range snap.Users {
		detail := UserDetail{
			ID:        u.ID,
			Name:      u.Name,
			Posts:     make([]string, 0, len(u.Posts)),
			Reactions: make([]string, 0, len(u.Reactions)),
		}
		for _, p := range u.Posts {
			detail.Posts = append(detail.Posts, p.Body)
		}
		for _, r := range u.Reactions {
			detail.Reactions = append(detail.Reactions, fmt.Sprintf("%s on post %s", r.Emotion, r.PostID))
		}
		view.Users = append(view.Users, detail)
	}
	return view, nil
}

func (s *ExplorerService) Posts(ctx context.Context) (*PostsView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	view := &PostsView{Posts: postDetails(snap.Posts)}
	if len(view.Posts) == 0 {
		view.Notice = NoticeNoPosts
	}
	return view, nil
}

// PostsByUser lists the posts of the user with the given name.
func (s *ExplorerService) PostsByUser(ctx context.Context, name string) (*UserPostsView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	u, ok := snap.UserByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, name)
	}
	view := &UserPostsView{User: u.Name, Posts: postDetails(u.Posts)}
	if len(view.Posts) == 0 {
		view.Notice = NoticeNoPosts
	}
	return view, nil
}

func postDetails(posts []*models.Post) []PostDetail {
	out := make([]PostDetail, 0, len(posts))
	for _, p := range posts {
		n := analytics.ReactionsReceived(p)
		detail := PostDetail{
			ID:           p.ID,
			Body:         p.Body,
			Reactions:    make([]string, 0, n),
			HasReactions: n > 0,
		}
		if p.Owner != nil {
			detail.Owner = p.Owner.Name
		}
		for _, r := range p.Reactions {
			author := ""
			if r.Author != nil {
				author = r.Author.Name
			}
			detail.Reactions = append(detail.Reactions, fmt.Sprintf("%s → %s", author, r.Emotion))
		}
		out = append(out, detail)
	}
	return out
}

func (s *ExplorerService) Reactions(ctx context.Context) (*ReactionsView, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	view := &ReactionsView{Reactions: make([]ReactionLine, 0, len(snap.Reactions))}
	if len(snap.Reactions) == 0 {
		view.Notice = NoticeNoReactions
		return view, nil
	}
	for _, r := range snap.Reactions {
		line := ReactionLine{Emotion: r.Emotion}
		if r.Author != nil {
			line.Author = r.Author.Name
		}
		if r.Target != nil {
			line.Post = excerpt(r.Target.Body)
		}
		view.Reactions = append(view.Reactions, line)
	}
	return view, nil
}

// excerpt shortens body to excerptRunes runes, marking the cut with "...".
func excerpt(body string) string {
	if utf8.RuneCountInString(body) <= excerptRunes {
		return body
	}
	runes := []rune(body)
	return string(runes[:excerptRunes]) + "..."
}
