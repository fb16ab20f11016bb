// Package render implements the ranking render pass: fetch ranking.json,
// validate it into typed records, and append table rows to a bound target.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrRenderFailed is the umbrella error every failed render pass matches.
// Callers that only care whether the pass happened test against this;
// ErrFetch, ErrDecode, and ErrSchema narrow the cause.
var ErrRenderFailed = errors.New("ranking render failed")

var (
	ErrFetch  = fmt.Errorf("%w: fetch", ErrRenderFailed)
	ErrDecode = fmt.Errorf("%w: decode", ErrRenderFailed)
	ErrSchema = fmt.Errorf("%w: schema", ErrRenderFailed)
)

// TeamRanking is one record of the published ranking. Array position in the
// payload determines displayed rank; Points never does.
type TeamRanking struct {
	Team           string          `json:"team"`
	Points         float64         `json:"points"`
	Heatmap        map[string]int  `json:"heatmap"`
	MapPerformance json.RawMessage `json:"map_performance,omitempty"` // carried through, not rendered
}

// Decode parses a ranking.json payload into typed records. The payload must
// be a JSON array; every record needs a non-empty team and a heatmap object.
// Validation runs before any rendering, so a bad payload renders nothing.
func Decode(data []byte) ([]TeamRanking, error) {
	var records []TeamRanking
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: payload is not an array", ErrSchema)
	}
	for i, r := range records {
		if r.Team == "" {
			return nil, fmt.Errorf("%w: record %d: missing team", ErrSchema, i)
		}
		if r.Heatmap == nil {
			return nil, fmt.Errorf("%w: record %d (%s): missing heatmap", ErrSchema, i, r.Team)
		}
	}
	return records, nil
}

// FlattenHeatmap renders heatmap entries as "key: value" joined with ", ".
// The source guarantees no key order, so entries are sorted by key.
func FlattenHeatmap(h map[string]int) string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + strconv.Itoa(h[k])
	}
	return strings.Join(parts, ", ")
}

// FormatPoints renders a points value the way ranking.json carries it:
// trailing zeros trimmed, at most two decimals.
func FormatPoints(p float64) string {
	s := strconv.FormatFloat(p, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
