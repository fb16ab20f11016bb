package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clutchrank/clutchrank/internal/api/respond"
	"github.com/clutchrank/clutchrank/internal/cache"
	"github.com/clutchrank/clutchrank/internal/store"
)

// GetTeam returns one team's rating state.
// @Summary Get team profile
// @Description Returns a team's current points, per-map win/loss record, and positional heatmap.
// @Tags teams
// @Produce json
// @Param name path string true "Team name"
// @Success 200 {object} store.TeamRow
// @Failure 404 {object} respond.ErrorResponse
// @Router /teams/{name} [get]
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAME", "Team name is required")
		return
	}

	cacheKey := "team:" + name
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLTeam, true)
		return
	}

	team, err := store.GetTeam(r.Context(), h.pool.Pool, name)
	if err != nil {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND",
			fmt.Sprintf("Team %q not found", name))
		return
	}

	data, err := json.Marshal(team)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_ERROR",
			"Failed to encode team")
		return
	}

	etag := h.cache.Set(cacheKey, data, cache.TTLTeam)
	respond.WriteJSON(w, data, etag, cache.TTLTeam, false)
}

// ListTeams returns all team names ordered by points.
// @Summary List teams
// @Description Returns all known team names, strongest first.
// @Tags teams
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	names, err := store.TeamNames(r.Context(), h.pool.Pool)
	if err != nil {
		h.logger.Error("Team listing failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "LIST_ERROR",
			"Failed to list teams")
		return
	}
	if names == nil {
		names = []string{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"teams": names,
		"count": len(names),
	})
}
