package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clutchrank/clutchrank/internal/rating"
	"github.com/clutchrank/clutchrank/internal/store"
)

// Recompute replays the stored match log through a fresh rating system,
// persists the resulting team state, and saves a ranking snapshot. With
// normalize set, a normalization pass runs after the replay (the usual
// end-of-ingest step).
func Recompute(ctx context.Context, pool *pgxpool.Pool, normalize bool, logger *slog.Logger) ([]rating.Entry, Result, error) {
	var result Result

	matches, err := store.LoadMatches(ctx, pool)
	if err != nil {
		return nil, result, err
	}
	result.RowsRead = len(matches)

	sys := rating.NewSystem()
	for _, m := range matches {
		sys.RecordMatch(m)
	}
	result.MatchesParsed = len(matches)
	if normalize {
		sys.Normalize()
	}

	for _, t := range sys.Teams() {
		if err := store.UpsertTeam(ctx, pool, t); err != nil {
			result.AddErrorf("%v", err)
			continue
		}
		result.TeamsUpserted++
	}

	var buf bytes.Buffer
	if err := sys.ExportJSON(&buf); err != nil {
		return nil, result, fmt.Errorf("export rankings: %w", err)
	}
	if err := store.SaveSnapshot(ctx, pool, buf.Bytes()); err != nil {
		return nil, result, err
	}

	rankings := sys.Rankings()
	logger.Info("Rankings recomputed",
		"matches", len(matches),
		"teams", sys.Size(),
		"normalized", normalize)
	return rankings, result, nil
}

// StoreMatches persists parsed matches to the log in order.
func StoreMatches(ctx context.Context, pool *pgxpool.Pool, matches []rating.Match) Result {
	var result Result
	for _, m := range matches {
		if _, err := store.InsertMatch(ctx, pool, m); err != nil {
			result.AddErrorf("%v", err)
			continue
		}
		result.MatchesStored++
	}
	return result
}
