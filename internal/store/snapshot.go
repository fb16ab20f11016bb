package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clutchrank/clutchrank/internal/config"
)

// ErrNoSnapshot means no ranking has been computed yet.
var ErrNoSnapshot = errors.New("no ranking snapshot")

// SaveSnapshot stores a computed ranking.json payload.
func SaveSnapshot(ctx context.Context, pool *pgxpool.Pool, payload []byte) error {
	_, err := pool.Exec(ctx,
		"INSERT INTO "+config.SnapshotsTable+" (payload) VALUES ($1)", payload)
	if err != nil {
		return fmt.Errorf("save ranking snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot returns the most recent ranking payload and when it was
// taken.
func LatestSnapshot(ctx context.Context, pool *pgxpool.Pool) ([]byte, time.Time, error) {
	var payload []byte
	var takenAt time.Time
	err := pool.QueryRow(ctx, "latest_snapshot").Scan(&payload, &takenAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, time.Time{}, ErrNoSnapshot
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return payload, takenAt, nil
}
