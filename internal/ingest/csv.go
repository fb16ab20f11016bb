package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/clutchrank/clutchrank/internal/rating"
)

// defaultStage is assumed when a row omits the stage column.
const defaultStage = "Group Stage"

// ParseMatches reads a header CSV match log. Required columns: team_a,
// team_b, score_a, score_b. Optional: map_name, is_tournament, stage,
// positions_a, positions_b (positions are ";"-separated). Rows with bad
// required fields are recorded as errors in the Result and skipped; the rest
// of the file still parses.
func ParseMatches(r io.Reader) ([]rating.Match, Result, error) {
	var result Result

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err == io.EOF {
		return nil, result, fmt.Errorf("match log is empty")
	}
	if err != nil {
		return nil, result, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"team_a", "team_b", "score_a", "score_b"} {
		if _, ok := col[required]; !ok {
			return nil, result, fmt.Errorf("match log missing required column %q", required)
		}
	}

	var matches []rating.Match
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.AddErrorf("line %d: %v", line, err)
			continue
		}
		result.RowsRead++

		m, err := parseRow(col, record)
		if err != nil {
			result.AddErrorf("line %d: %v", line, err)
			continue
		}
		matches = append(matches, m)
		result.MatchesParsed++
	}

	return matches, result, nil
}

// ParseMatchesFile opens and parses a match log from disk.
func ParseMatchesFile(path string) ([]rating.Match, Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Result{}, fmt.Errorf("open match log: %w", err)
	}
	defer f.Close()
	return ParseMatches(f)
}

func parseRow(col map[string]int, record []string) (rating.Match, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	teamA := field("team_a")
	teamB := field("team_b")
	if teamA == "" || teamB == "" {
		return rating.Match{}, fmt.Errorf("team_a and team_b are required")
	}

	scoreA, err := strconv.Atoi(field("score_a"))
	if err != nil {
		return rating.Match{}, fmt.Errorf("score_a: %w", err)
	}
	scoreB, err := strconv.Atoi(field("score_b"))
	if err != nil {
		return rating.Match{}, fmt.Errorf("score_b: %w", err)
	}

	stage := field("stage")
	if stage == "" {
		stage = defaultStage
	}

	return rating.Match{
		TeamA:      teamA,
		TeamB:      teamB,
		ScoreA:     scoreA,
		ScoreB:     scoreB,
		Map:        field("map_name"),
		Tournament: strings.EqualFold(field("is_tournament"), "true"),
		Stage:      stage,
		PositionsA: splitPositions(field("positions_a")),
		PositionsB: splitPositions(field("positions_b")),
	}, nil
}

// splitPositions splits a ";"-separated position list, dropping blanks.
func splitPositions(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
