package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/HammerMeetNail/socialexplorer/internal/analytics"
	"github.com/HammerMeetNail/socialexplorer/internal/services"
)

type mockExplorerService struct {
	DashboardFunc   func(ctx context.Context, req services.DashboardRequest) (*services.DashboardView, error)
	MetricsFunc     func(ctx context.Context, k int, metric analytics.Metric) (*services.MetricsView, error)
	UsersFunc       func(ctx context.Context) (*services.UsersView, error)
	PostsFunc       func(ctx context.Context) (*services.PostsView, error)
	ReactionsFunc   func(ctx context.Context) (*services.ReactionsView, error)
	PostsByUserFunc func(ctx context.Context, name string) (*services.UserPostsView, error)
}

var errNotConfigured = errors.New("mock not configured")

func (m *mockExplorerService) Dashboard(ctx context.Context, req services.DashboardRequest) (*services.DashboardView, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx, req)
	}
	return nil, errNotConfigured
}

func (m *mockExplorerService) Metrics(ctx context.Context, k int, metric analytics.Metric) (*services.MetricsView, error) {
	if m.MetricsFunc != nil {
		return m.MetricsFunc(ctx, k, metric)
	}
	return nil, errNotConfigured
}

func (m *mockExplorerService) Users(ctx context.Context) (*services.UsersView, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(ctx)
	}
	return nil, errNotConfigured
}

func (m *mockExplorerService) Posts(ctx context.Context) (*services.PostsView, error) {
	if m.PostsFunc != nil {
		return m.PostsFunc(ctx)
	}
	return nil, errNotConfigured
}

func (m *mockExplorerService) Reactions(ctx context.Context) (*services.ReactionsView, error) {
	if m.ReactionsFunc != nil {
		return m.ReactionsFunc(ctx)
	}
	return nil, errNotConfigured
}

func (m *mockExplorerService) PostsByUser(ctx context.Context, name string) (*services.UserPostsView, error) {
	if m.PostsByUserFunc != nil {
		return m.PostsByUserFunc(ctx, name)
	}
	return nil, errNotConfigured
}

type mockPinger struct {
	err error
}

func (m mockPinger) Health(ctx context.Context) error {
	return m.err
}

func assertErrorResponse(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("expected status %d, got %d (body %s)", status, rr.Code, rr.Body.String())
	}
	var resp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Error != message {
		t.Fatalf("expected error %q, got %q", message, resp.Error)
	}
}
