package handler

import (
	"net/http"
	"strconv"

	"github.com/clutchrank/clutchrank/internal/api/respond"
	"github.com/clutchrank/clutchrank/internal/store"
)

const maxMatchLimit = 200

// GetMatches returns recent matches from the log, newest first.
// @Summary Get recent matches
// @Description Returns the most recently recorded matches.
// @Tags matches
// @Produce json
// @Param limit query int false "Max matches to return (default 20, max 200)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Router /matches [get]
func (h *Handler) GetMatches(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_LIMIT",
				"limit must be a positive integer")
			return
		}
		limit = n
	}
	if limit > maxMatchLimit {
		limit = maxMatchLimit
	}

	matches, err := store.RecentMatches(r.Context(), h.pool.Pool, limit)
	if err != nil {
		h.logger.Error("Match listing failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "LIST_ERROR",
			"Failed to list matches")
		return
	}
	if matches == nil {
		matches = []store.MatchRow{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}
