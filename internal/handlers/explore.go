package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/HammerMeetNail/socialexplorer/internal/logging"
	"github.com/HammerMeetNail/socialexplorer/internal/services"
)

type ExploreHandler struct {
	explorer services.ExplorerServiceInterface
}

func NewExploreHandler(explorer services.ExplorerServiceInterface) *ExploreHandler {
	return &ExploreHandler{explorer: explorer}
}

// Explore serves the users, posts and reactions listings.
func (h *ExploreHandler) Explore(w http.ResponseWriter, r *http.Request) {
	mode, err := services.ParseExplorerMode(r.PathValue("mode"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	var view interface{}
	switch mode {
	case services.ExplorerUsers:
		view, err = h.explorer.Users(r.Context())
	case services.ExplorerPosts:
		view, err = h.explorer.Posts(r.Context())
	case services.ExplorerReactions:
		view, err = h.explorer.Reactions(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "Mode is not a listing")
		return
	}
	if err != nil {
		logging.Error("Error exploring", map[string]interface{}{"mode": mode.String(), "error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *ExploreHandler) PostsByUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "User name is required")
		return
	}

	view, err := h.explorer.PostsByUser(r.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		logging.Error("Error listing user posts", map[string]interface{}{"user": name, "error": err.Error()})
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, view)
}
