// Package rating implements the Elo-style team rating engine: per-team
// points, match history, map win/loss records, and positional heatmaps.
package rating

const (
	// basePoints is the rating every team starts from and the anchor the
	// normalization pass pulls the field toward.
	basePoints = 1000.0

	// recentWindow bounds the rolling list of a team's latest matches.
	recentWindow = 10
)

// MapRecord counts wins and losses on a single map.
type MapRecord struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// MatchDetail is one played match seen from a single team's side.
type MatchDetail struct {
	Opponent   string `json:"opponent"`
	Score      int    `json:"score"`
	Result     string `json:"result"` // "win" or "loss"
	Map        string `json:"map"`
	Tournament bool   `json:"tournament"`
	Stage      string `json:"stage"`
}

// Team holds the mutable rating state for one team.
type Team struct {
	Name           string
	Points         float64
	History        []MatchDetail
	Recent         []MatchDetail // last recentWindow entries of History
	MapPerformance map[string]*MapRecord
	Heatmap        map[string]int
}

// NewTeam creates a team at the base rating with empty records.
func NewTeam(name string) *Team {
	return &Team{
		Name:           name,
		Points:         basePoints,
		MapPerformance: make(map[string]*MapRecord),
		Heatmap:        make(map[string]int),
	}
}

// AddPoints applies a rating delta.
func (t *Team) AddPoints(delta float64) {
	t.Points += delta
}

// AddMatch appends a match to the full history and the rolling recent window.
func (t *Team) AddMatch(d MatchDetail) {
	t.History = append(t.History, d)
	t.Recent = append(t.Recent, d)
	if len(t.Recent) > recentWindow {
		t.Recent = t.Recent[1:]
	}
}

// RecordMapResult bumps the win or loss counter for a map. Any result other
// than "win" counts as a loss.
func (t *Team) RecordMapResult(mapName, result string) {
	rec, ok := t.MapPerformance[mapName]
	if !ok {
		rec = &MapRecord{}
		t.MapPerformance[mapName] = rec
	}
	if result == "win" {
		rec.Wins++
	} else {
		rec.Losses++
	}
}

// RecordPosition increments the heatmap counter for a position label.
func (t *Team) RecordPosition(position string) {
	t.Heatmap[position]++
}
