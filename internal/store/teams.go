// Package store persists teams, the match log, and ranking snapshots in
// Postgres.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clutchrank/clutchrank/internal/config"
	"github.com/clutchrank/clutchrank/internal/rating"
)

// TeamRow is one persisted team with its serialized records.
type TeamRow struct {
	Name           string          `json:"name"`
	Points         float64         `json:"points"`
	MapPerformance json.RawMessage `json:"map_performance"`
	Heatmap        json.RawMessage `json:"heatmap"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// UpsertTeam writes one team's rating state, replacing any previous row.
func UpsertTeam(ctx context.Context, pool *pgxpool.Pool, t *rating.Team) error {
	maps, err := json.Marshal(t.MapPerformance)
	if err != nil {
		return fmt.Errorf("marshal map performance for %s: %w", t.Name, err)
	}
	heatmap, err := json.Marshal(t.Heatmap)
	if err != nil {
		return fmt.Errorf("marshal heatmap for %s: %w", t.Name, err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO `+config.TeamsTable+` (name, points, map_performance, heatmap)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE SET
			points = EXCLUDED.points,
			map_performance = EXCLUDED.map_performance,
			heatmap = EXCLUDED.heatmap,
			updated_at = NOW()`,
		t.Name, t.Points, maps, heatmap,
	)
	if err != nil {
		return fmt.Errorf("upsert team %s: %w", t.Name, err)
	}
	return nil
}

// GetTeam returns one team by name.
func GetTeam(ctx context.Context, pool *pgxpool.Pool, name string) (*TeamRow, error) {
	var row TeamRow
	err := pool.QueryRow(ctx, "team_by_name", name).Scan(
		&row.Name, &row.Points, &row.MapPerformance, &row.Heatmap, &row.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get team %s: %w", name, err)
	}
	return &row, nil
}

// TeamNames returns all team names ordered by points descending.
func TeamNames(ctx context.Context, pool *pgxpool.Pool) ([]string, error) {
	rows, err := pool.Query(ctx, "team_names")
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan team name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
