package rating

import (
	"encoding/json"
	"io"
	"math"
	"sort"
)

// normalizePull is the fraction of the field's drift from basePoints that a
// single Normalize pass corrects.
const normalizePull = 0.1

// Entry is one row of a computed ranking, in published order.
type Entry struct {
	Team           string               `json:"team"`
	Points         float64              `json:"points"`
	MapPerformance map[string]MapRecord `json:"map_performance"`
	Heatmap        map[string]int       `json:"heatmap"`
}

// System accumulates match results and produces rankings. Not safe for
// concurrent use; callers replay a match log from a single goroutine.
type System struct {
	teams map[string]*Team
}

// NewSystem creates an empty rating system.
func NewSystem() *System {
	return &System{teams: make(map[string]*Team)}
}

// GetOrCreateTeam returns the named team, creating it at the base rating on
// first reference.
func (s *System) GetOrCreateTeam(name string) *Team {
	if t, ok := s.teams[name]; ok {
		return t
	}
	t := NewTeam(name)
	s.teams[name] = t
	return t
}

// Size returns the number of known teams.
func (s *System) Size() int { return len(s.teams) }

// Teams returns all teams ordered by name, for persistence passes that want
// a stable iteration order.
func (s *System) Teams() []*Team {
	teams := make([]*Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams
}

// RecordMatch applies one match: rating deltas, history, map records, and
// heatmap positions for both sides.
func (s *System) RecordMatch(m Match) {
	a := s.GetOrCreateTeam(m.TeamA)
	b := s.GetOrCreateTeam(m.TeamB)

	deltaA, deltaB := EloDelta(a, b, m)
	a.AddPoints(deltaA)
	b.AddPoints(deltaB)

	a.AddMatch(m.detail(true))
	b.AddMatch(m.detail(false))

	if m.winA() {
		a.RecordMapResult(m.Map, "win")
		b.RecordMapResult(m.Map, "loss")
	} else {
		a.RecordMapResult(m.Map, "loss")
		b.RecordMapResult(m.Map, "win")
	}

	for _, pos := range m.PositionsA {
		a.RecordPosition(pos)
	}
	for _, pos := range m.PositionsB {
		b.RecordPosition(pos)
	}
}

// Normalize pulls every team a fixed fraction of the way back toward the
// base rating, countering inflation from the margin-scaled K factor. No-op
// with zero teams.
func (s *System) Normalize() {
	if len(s.teams) == 0 {
		return
	}
	var sum float64
	for _, t := range s.teams {
		sum += t.Points
	}
	correction := (basePoints - sum/float64(len(s.teams))) * normalizePull
	for _, t := range s.teams {
		t.Points += correction
	}
}

// Rankings returns all teams ordered by points descending, ties broken by
// name, with points rounded to two decimals.
func (s *System) Rankings() []Entry {
	entries := make([]Entry, 0, len(s.teams))
	for _, t := range s.teams {
		maps := make(map[string]MapRecord, len(t.MapPerformance))
		for name, rec := range t.MapPerformance {
			maps[name] = *rec
		}
		heatmap := make(map[string]int, len(t.Heatmap))
		for pos, count := range t.Heatmap {
			heatmap[pos] = count
		}
		entries = append(entries, Entry{
			Team:           t.Name,
			Points:         round2(t.Points),
			MapPerformance: maps,
			Heatmap:        heatmap,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Team < entries[j].Team
	})
	return entries
}

// ExportJSON writes the current rankings as indented JSON, the ranking.json
// wire shape the render pipeline and API consume.
func (s *System) ExportJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(s.Rankings())
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
