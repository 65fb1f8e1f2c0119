package services

import (
	"context"

	"github.com/HammerMeetNail/socialexplorer/internal/analytics"
)

// ExplorerServiceInterface is what the HTTP handlers depend on.
type ExplorerServiceInterface interface {
	Dashboard(ctx context.Context, req DashboardRequest) (*DashboardView, error)
	Metrics(ctx context.Context, k int, metric analytics.Metric) (*MetricsView, error)
	Users(ctx context.Context) (*UsersView, error)
	Posts(ctx context.Context) (*PostsView, error)
	Reactions(ctx context.Context) (*ReactionsView, error)
	PostsByUser(ctx context.Context, name string) (*UserPostsView, error)
}

var (
	_ ExplorerServiceInterface = (*ExplorerService)(nil)
	_ SnapshotProvider         = (*SnapshotService)(nil)
)
