package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/HammerMeetNail/socialexplorer/internal/analytics"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// rankingParams reads the optional k and metric query parameters shared by
// the dashboard and metrics endpoints.
func rankingParams(r *http.Request, defaultK, maxK int) (int, analytics.Metric, string) {
	k := defaultK
	if raw := r.URL.Query().Get("k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxK {
			return 0, 0, "Invalid k"
		}
		k = parsed
	}

	metric := analytics.MetricPosts
	if raw := r.URL.Query().Get("metric"); raw != "" {
		parsed, err := analytics.ParseMetric(raw)
		if err != nil {
			return 0, 0, "Invalid metric"
		}
		metric = parsed
	}
	return k, metric, ""
}
