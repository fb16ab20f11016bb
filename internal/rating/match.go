package rating

import "math"

// baseKFactor is the unscaled Elo K before stage and margin weighting.
const baseKFactor = 32.0

// StageMultipliers weights the K factor by tournament stage. Unknown stages
// fall back to 1.0.
var StageMultipliers = map[string]float64{
	"Group Stage":  1.0,
	"Quarterfinal": 1.2,
	"Semifinal":    1.5,
	"Final":        2.0,
}

// Match describes one played match between two teams, as recorded in the
// tournament log.
type Match struct {
	TeamA      string
	TeamB      string
	ScoreA     int
	ScoreB     int
	Map        string
	Tournament bool
	Stage      string
	PositionsA []string
	PositionsB []string
}

// winA reports whether team A took the match. Score ties count as a loss for
// A, matching how the log scores forfeits.
func (m Match) winA() bool { return m.ScoreA > m.ScoreB }

// EloDelta computes the rating change for both sides of a match.
//
// K scales with the stage multiplier and the score margin (1 + diff/16), so
// a 16-0 final moves ratings four times as far as a 16-14 group game between
// the same opponents.
func EloDelta(a, b *Team, m Match) (deltaA, deltaB float64) {
	k := baseKFactor
	if mult, ok := StageMultipliers[m.Stage]; ok {
		k *= mult
	}

	expectedA := 1.0 / (1.0 + math.Pow(10, (b.Points-a.Points)/400.0))
	expectedB := 1.0 - expectedA

	actualA := 0.0
	if m.winA() {
		actualA = 1.0
	}
	actualB := 1.0 - actualA

	diff := math.Abs(float64(m.ScoreA - m.ScoreB))
	k *= 1.0 + diff/16.0

	return k * (actualA - expectedA), k * (actualB - expectedB)
}

// detail builds one side's MatchDetail for the history log.
func (m Match) detail(forA bool) MatchDetail {
	d := MatchDetail{
		Map:        m.Map,
		Tournament: m.Tournament,
		Stage:      m.Stage,
	}
	if forA {
		d.Opponent = m.TeamB
		d.Score = m.ScoreA
	} else {
		d.Opponent = m.TeamA
		d.Score = m.ScoreB
	}
	won := m.winA() == forA
	if won {
		d.Result = "win"
	} else {
		d.Result = "loss"
	}
	return d
}
