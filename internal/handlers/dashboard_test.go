package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"

	"github.com/HammerMeetNail/socialexplorer/internal/analytics"
	"github.com/HammerMeetNail/socialexplorer/internal/config"
	"github.com/HammerMeetNail/socialexplorer/internal/services"
)

func testDashboardConfig() config.DashboardConfig {
	return config.DashboardConfig{DefaultTopK: 5, MaxTopK: 10}
}

func TestDashboardHandler_Defaults(t *testing.T) {
	var got services.DashboardRequest
	handler := NewDashboardHandler(&mockExplorerService{
		DashboardFunc: func(ctx context.Context, req services.DashboardRequest) (*services.DashboardView, error) {
			got = req
			return &services.DashboardView{
				Chart:     analytics.ChartSpec{Kind: analytics.KindBar, Title: "Posts and reactions by user"},
				Headlines: []string{"Users: 0"},
			}, nil
		},
	}, testDashboardConfig())

	rr := httptest.NewRecorder()
	handler.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got.Mode != analytics.ModeBarByUser || got.TopK != 5 || got.Metric != analytics.MetricPosts {
		t.Fatalf("unexpected defaults: %+v", got)
	}
	if got.Language != language.English {
		t.Fatalf("expected English without Accept-Language, got %v", got.Language)
	}

	var resp map[string]json.RawMessage
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"chart", "summary", "headlines", "empty"} {
		if _, ok := resp[key]; !ok {
			t.Fatalf("expected %q in response", key)
		}
	}
}

func TestDashboardHandler_ParsesQuery(t *testing.T) {
	var got services.DashboardRequest
	handler := NewDashboardHandler(&mockExplorerService{
		DashboardFunc: func(ctx context.Context, req services.DashboardRequest) (*services.DashboardView, error) {
			got = req
			return &services.DashboardView{}, nil
		},
	}, testDashboardConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?mode=top-k&k=3&metric=reactions", nil)
	req.Header.Set("Accept-Language", "es-MX,es;q=0.9,en;q=0.5")
	rr := httptest.NewRecorder()
	handler.Dashboard(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if got.Mode != analytics.ModeTopKHorizontalBar || got.TopK != 3 || got.Metric != analytics.MetricReactions {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.Language != language.Spanish {
		t.Fatalf("expected Spanish, got %v", got.Language)
	}
}

func TestDashboardHandler_BadRequests(t *testing.T) {
	tests := []struct {
		query   string
		message string
	}{
		{query: "mode=treemap", message: "Invalid mode"},
		{query: "k=0", message: "Invalid k"},
		{query: "k=abc", message: "Invalid k"},
		{query: "k=11", message: "Invalid k"},
		{query: "metric=likes", message: "Invalid metric"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			handler := NewDashboardHandler(&mockExplorerService{
				DashboardFunc: func(ctx context.Context, req services.DashboardRequest) (*services.DashboardView, error) {
					t.Fatal("service should not be called")
					return nil, nil
				},
			}, testDashboardConfig())

			rr := httptest.NewRecorder()
			handler.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard?"+tt.query, nil))
			assertErrorResponse(t, rr, http.StatusBadRequest, tt.message)
		})
	}
}

func TestDashboardHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "unknown mode", err: fmt.Errorf("%w: 9", analytics.ErrUnknownMode), status: http.StatusBadRequest, message: "Invalid mode"},
		{name: "provider failure", err: errors.New("db down"), status: http.StatusInternalServerError, message: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewDashboardHandler(&mockExplorerService{
				DashboardFunc: func(ctx context.Context, req services.DashboardRequest) (*services.DashboardView, error) {
					return nil, tt.err
				},
			}, testDashboardConfig())

			rr := httptest.NewRecorder()
			handler.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))
			assertErrorResponse(t, rr, tt.status, tt.message)
		})
	}
}

func TestDashboardHandler_Modes(t *testing.T) {
	handler := NewDashboardHandler(&mockExplorerService{}, testDashboardConfig())
	rr := httptest.NewRecorder()
	handler.Modes(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard/modes", nil))

	var resp struct {
		Modes []string `json:"modes"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"bar-by-user", "top-k", "scatter", "heatmap", "pie-by-emotion"}
	if len(resp.Modes) != len(want) {
		t.Fatalf("expected %v, got %v", want, resp.Modes)
	}
	for i := range want {
		if resp.Modes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, resp.Modes)
		}
	}
}

func TestDashboardHandler_Metrics(t *testing.T) {
	handler := NewDashboardHandler(&mockExplorerService{
		MetricsFunc: func(ctx context.Context, k int, metric analytics.Metric) (*services.MetricsView, error) {
			if k != 2 || metric != analytics.MetricReactions {
				t.Fatalf("unexpected args k=%d metric=%v", k, metric)
			}
			return &services.MetricsView{
				Users:          []services.UserMetric{{Name: "Ana", Posts: 2, Reactions: 1}},
				MostActiveUser: "Ana",
			}, nil
		},
	}, testDashboardConfig())

	rr := httptest.NewRecorder()
	handler.Metrics(rr, httptest.NewRequest(http.MethodGet, "/api/metrics?k=2&metric=reactions", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp services.MetricsView
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MostActiveUser != "Ana" || len(resp.Users) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestDashboardHandler_MetricsErrors(t *testing.T) {
	handler := NewDashboardHandler(&mockExplorerService{}, testDashboardConfig())

	rr := httptest.NewRecorder()
	handler.Metrics(rr, httptest.NewRequest(http.MethodGet, "/api/metrics?metric=likes", nil))
	assertErrorResponse(t, rr, http.StatusBadRequest, "Invalid metric")

	rr = httptest.NewRecorder()
	handler.Metrics(rr, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	assertErrorResponse(t, rr, http.StatusInternalServerError, "Internal server error")
}
