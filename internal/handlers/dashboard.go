package handlers

import (
	"errors"
	"net/http"

	"golang.org/x/text/language"

	"github.com/HammerMeetNail/socialexplorer/internal/analytics"
	"github.com/HammerMeetNail/socialexplorer/internal/config"
	"github.com/HammerMeetNail/socialexplorer/internal/logging"
	"github.com/HammerMeetNail/socialexplorer/internal/services"
)

// Headline numbers are formatted for one of these locales. English first so
// it wins when nothing matches.
var headlineSupported = []language.Tag{
	language.English,
	language.Spanish,
	language.German,
	language.French,
	language.Portuguese,
}

var headlineMatcher = language.NewMatcher(headlineSupported)

type DashboardHandler struct {
	explorer    services.ExplorerServiceInterface
	defaultTopK int
	maxTopK     int
}

func NewDashboardHandler(explorer services.ExplorerServiceInterface, cfg config.DashboardConfig) *DashboardHandler {
	return &DashboardHandler{
		explorer:    explorer,
		defaultTopK: cfg.DefaultTopK,
		maxTopK:     cfg.MaxTopK,
	}
}

type ModesResponse struct {
	Modes []analytics.Mode `json:"modes"`
}

func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	mode := analytics.ModeBarByUser
	if raw := r.URL.Query().Get("mode"); raw != "" {
		parsed, err := analytics.ParseMode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid mode")
			return
		}
		mode = parsed
	}

	k, metric, msg := rankingParams(r, h.defaultTopK, h.maxTopK)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	view, err := h.explorer.Dashboard(r.Context(), services.DashboardRequest{
		Mode:     mode,
		TopK:     k,
		Metric:   metric,
		Language: headlineLanguage(r),
	})
	if err != nil {
		if errors.Is(err, analytics.ErrUnknownMode) {
			writeError(w, http.StatusBadRequest, "Invalid mode")
			return
		}
		logging.Error("Error building dashboard", map[string]interface{}{"mode": mode.String(), "error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *DashboardHandler) Modes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ModesResponse{Modes: analytics.Modes()})
}

func (h *DashboardHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	k, metric, msg := rankingParams(r, h.defaultTopK, h.maxTopK)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	view, err := h.explorer.Metrics(r.Context(), k, metric)
	if err != nil {
		logging.Error("Error computing metrics", map[string]interface{}{"error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func headlineLanguage(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	_, idx, _ := headlineMatcher.Match(tags...)
	return headlineSupported[idx]
}
