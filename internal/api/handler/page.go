package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/clutchrank/clutchrank/internal/api/respond"
	"github.com/clutchrank/clutchrank/internal/render"
	"github.com/clutchrank/clutchrank/internal/store"
)

// RankingPage serves the rendered ranking table as a full HTML document.
// The page renders into a buffer first: a failed pass sends an error page
// and never leaks partial rows.
// @Summary Ranking page
// @Description Server-rendered HTML ranking table (Rank / Team / Points / Heatmap).
// @Tags rankings
// @Produce html
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Router /ranking [get]
func (h *Handler) RankingPage(w http.ResponseWriter, r *http.Request) {
	source, err := h.pageSource(r)
	if err != nil {
		if errors.Is(err, store.ErrNoSnapshot) {
			respond.WriteError(w, http.StatusNotFound, "NO_RANKING",
				"No ranking has been computed yet")
			return
		}
		h.logger.Error("Ranking page source failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "SNAPSHOT_ERROR",
			"Failed to load ranking snapshot")
		return
	}

	pipeline := render.NewPipeline(source, h.logger)
	var buf bytes.Buffer
	if err := pipeline.RunPage(r.Context(), &buf); err != nil {
		respond.WriteError(w, http.StatusBadGateway, "RENDER_FAILED",
			"Ranking could not be rendered")
		return
	}
	respond.WriteHTML(w, http.StatusOK, buf.Bytes())
}

// pageSource picks where the page's ranking.json comes from: a configured
// remote URL, or the latest snapshot in the database.
func (h *Handler) pageSource(r *http.Request) (render.Source, error) {
	if h.cfg.RankingSourceURL != "" {
		return render.NewHTTPSource(h.cfg.RankingSourceURL, h.cfg.RenderTimeout), nil
	}
	payload, _, err := store.LatestSnapshot(r.Context(), h.pool.Pool)
	if err != nil {
		return nil, err
	}
	return render.BytesSource(payload), nil
}
