package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clutchrank/clutchrank/internal/config"
	"github.com/clutchrank/clutchrank/internal/rating"
)

// MatchRow is one persisted match as served by the API.
type MatchRow struct {
	ID         uuid.UUID `json:"id"`
	TeamA      string    `json:"team_a"`
	TeamB      string    `json:"team_b"`
	ScoreA     int       `json:"score_a"`
	ScoreB     int       `json:"score_b"`
	Map        *string   `json:"map_name"`
	Tournament bool      `json:"is_tournament"`
	Stage      string    `json:"stage"`
	PlayedAt   time.Time `json:"played_at"`
}

// InsertMatch appends one match to the log and returns its id. The seq
// column preserves insert order for replay.
func InsertMatch(ctx context.Context, pool *pgxpool.Pool, m rating.Match) (uuid.UUID, error) {
	id := uuid.New()
	_, err := pool.Exec(ctx, `
		INSERT INTO `+config.MatchesTable+` (
			id, team_a, team_b, score_a, score_b,
			map_name, is_tournament, stage, positions_a, positions_b
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		id, m.TeamA, m.TeamB, m.ScoreA, m.ScoreB,
		nilEmpty(m.Map), m.Tournament, m.Stage,
		nonNilList(m.PositionsA), nonNilList(m.PositionsB),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert match %s vs %s: %w", m.TeamA, m.TeamB, err)
	}
	return id, nil
}

// LoadMatches returns the full match log in insert order, ready for replay
// through the rating engine.
func LoadMatches(ctx context.Context, pool *pgxpool.Pool) ([]rating.Match, error) {
	rows, err := pool.Query(ctx, "all_matches")
	if err != nil {
		return nil, fmt.Errorf("load match log: %w", err)
	}
	defer rows.Close()

	var matches []rating.Match
	for rows.Next() {
		var m rating.Match
		var mapName *string
		if err := rows.Scan(
			&m.TeamA, &m.TeamB, &m.ScoreA, &m.ScoreB,
			&mapName, &m.Tournament, &m.Stage, &m.PositionsA, &m.PositionsB,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		if mapName != nil {
			m.Map = *mapName
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// RecentMatches returns the latest matches, newest first.
func RecentMatches(ctx context.Context, pool *pgxpool.Pool, limit int) ([]MatchRow, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := pool.Query(ctx, "recent_matches", limit)
	if err != nil {
		return nil, fmt.Errorf("recent matches: %w", err)
	}
	defer rows.Close()

	var matches []MatchRow
	for rows.Next() {
		var m MatchRow
		if err := rows.Scan(
			&m.ID, &m.TeamA, &m.TeamB, &m.ScoreA, &m.ScoreB,
			&m.Map, &m.Tournament, &m.Stage, &m.PlayedAt,
		); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func nilEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNilList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
