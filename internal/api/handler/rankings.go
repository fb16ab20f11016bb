package handler

import (
	"errors"
	"net/http"

	"github.com/clutchrank/clutchrank/internal/api/respond"
	"github.com/clutchrank/clutchrank/internal/cache"
	"github.com/clutchrank/clutchrank/internal/store"
)

// rankingsCacheKey is shared by /api/v1/rankings and /ranking.json — both
// serve the identical snapshot payload.
const rankingsCacheKey = "rankings:latest"

// GetRankings serves the latest computed ranking snapshot.
// @Summary Get current rankings
// @Description Returns the latest ranking snapshot: teams ordered by points with map performance and positional heatmaps. Raw JSON passthrough from the snapshot store.
// @Tags rankings
// @Produce json
// @Success 200 {array} render.TeamRanking
// @Failure 404 {object} respond.ErrorResponse
// @Router /rankings [get]
func (h *Handler) GetRankings(w http.ResponseWriter, r *http.Request) {
	if data, etag, ok := h.cache.Get(rankingsCacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLRanking, true)
		return
	}

	payload, _, err := store.LatestSnapshot(r.Context(), h.pool.Pool)
	if errors.Is(err, store.ErrNoSnapshot) {
		respond.WriteError(w, http.StatusNotFound, "NO_RANKING",
			"No ranking has been computed yet")
		return
	}
	if err != nil {
		h.logger.Error("Snapshot lookup failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SNAPSHOT_ERROR",
			"Failed to load ranking snapshot")
		return
	}

	etag := h.cache.Set(rankingsCacheKey, payload, cache.TTLRanking)
	respond.WriteJSON(w, payload, etag, cache.TTLRanking, false)
}
