package rating

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeamDefaults(t *testing.T) {
	team := NewTeam("Astralis")

	assert.Equal(t, "Astralis", team.Name)
	assert.Equal(t, basePoints, team.Points)
	assert.Empty(t, team.History)
	assert.NotNil(t, team.MapPerformance)
	assert.NotNil(t, team.Heatmap)
}

func TestEloDeltaEqualRatings(t *testing.T) {
	a := NewTeam("NAVI")
	b := NewTeam("FaZe")
	m := Match{TeamA: "NAVI", TeamB: "FaZe", ScoreA: 16, ScoreB: 14, Stage: "Group Stage"}

	deltaA, deltaB := EloDelta(a, b, m)

	// K = 32 * 1.0 * (1 + 2/16) = 36; expected = 0.5 at equal ratings.
	assert.InDelta(t, 18.0, deltaA, 1e-9)
	assert.InDelta(t, -18.0, deltaB, 1e-9)
}

func TestEloDeltaStageMultiplier(t *testing.T) {
	tests := []struct {
		stage string
		want  float64
	}{
		{"Group Stage", 18.0},
		{"Quarterfinal", 21.6},
		{"Semifinal", 27.0},
		{"Final", 36.0},
		{"Showmatch", 18.0}, // unknown stage falls back to 1.0
	}
	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			a := NewTeam("A")
			b := NewTeam("B")
			m := Match{TeamA: "A", TeamB: "B", ScoreA: 16, ScoreB: 14, Stage: tt.stage}
			deltaA, _ := EloDelta(a, b, m)
			assert.InDelta(t, tt.want, deltaA, 1e-9)
		})
	}
}

func TestEloDeltaMarginScaling(t *testing.T) {
	a := NewTeam("A")
	b := NewTeam("B")

	narrow, _ := EloDelta(a, b, Match{ScoreA: 16, ScoreB: 14, Stage: "Group Stage"})
	blowout, _ := EloDelta(a, b, Match{ScoreA: 16, ScoreB: 0, Stage: "Group Stage"})

	// 16-0 doubles K relative to base; 16-14 only adds 2/16.
	assert.Greater(t, blowout, narrow)
	assert.InDelta(t, 32.0, blowout, 1e-9) // 32 * (1 + 16/16) * 0.5
}

func TestEloDeltaZeroSum(t *testing.T) {
	a := NewTeam("A")
	b := NewTeam("B")
	a.Points = 1150
	b.Points = 880

	deltaA, deltaB := EloDelta(a, b, Match{ScoreA: 10, ScoreB: 16, Stage: "Final"})
	assert.InDelta(t, 0, deltaA+deltaB, 1e-9)
}

func TestEloDeltaFavoriteGainsLess(t *testing.T) {
	strong := NewTeam("strong")
	weak := NewTeam("weak")
	strong.Points = 1300

	deltaStrong, _ := EloDelta(strong, weak, Match{ScoreA: 16, ScoreB: 10, Stage: "Group Stage"})

	even := NewTeam("even")
	other := NewTeam("other")
	deltaEven, _ := EloDelta(even, other, Match{ScoreA: 16, ScoreB: 10, Stage: "Group Stage"})

	assert.Less(t, deltaStrong, deltaEven)
}

func TestRecordMatchUpdatesBothSides(t *testing.T) {
	sys := NewSystem()
	sys.RecordMatch(Match{
		TeamA:      "NAVI",
		TeamB:      "FaZe",
		ScoreA:     16,
		ScoreB:     12,
		Map:        "Mirage",
		Tournament: true,
		Stage:      "Semifinal",
		PositionsA: []string{"A Site", "A Site", "Mid"},
		PositionsB: []string{"B Site"},
	})

	navi := sys.GetOrCreateTeam("NAVI")
	faze := sys.GetOrCreateTeam("FaZe")

	assert.Greater(t, navi.Points, basePoints)
	assert.Less(t, faze.Points, basePoints)

	require.Len(t, navi.History, 1)
	assert.Equal(t, "FaZe", navi.History[0].Opponent)
	assert.Equal(t, "win", navi.History[0].Result)
	assert.Equal(t, "loss", faze.History[0].Result)
	assert.Equal(t, 16, navi.History[0].Score)
	assert.Equal(t, 12, faze.History[0].Score)

	require.Contains(t, navi.MapPerformance, "Mirage")
	assert.Equal(t, 1, navi.MapPerformance["Mirage"].Wins)
	assert.Equal(t, 1, faze.MapPerformance["Mirage"].Losses)

	assert.Equal(t, 2, navi.Heatmap["A Site"])
	assert.Equal(t, 1, navi.Heatmap["Mid"])
	assert.Equal(t, 1, faze.Heatmap["B Site"])
}

func TestRecentWindowBounded(t *testing.T) {
	sys := NewSystem()
	for i := 0; i < recentWindow+5; i++ {
		sys.RecordMatch(Match{TeamA: "A", TeamB: "B", ScoreA: 16, ScoreB: i, Map: "Dust2", Stage: "Group Stage"})
	}

	a := sys.GetOrCreateTeam("A")
	b := sys.GetOrCreateTeam("B")
	assert.Len(t, a.History, recentWindow+5)
	assert.Len(t, a.Recent, recentWindow)
	// Oldest entries drop off the front: B's own scores ran 0..14, so the
	// window starts at 5.
	assert.Equal(t, 5, b.Recent[0].Score)
	assert.Equal(t, recentWindow+4, b.Recent[len(b.Recent)-1].Score)
}

func TestNormalizePullsTowardBase(t *testing.T) {
	sys := NewSystem()
	sys.GetOrCreateTeam("A").Points = 1200
	sys.GetOrCreateTeam("B").Points = 1100

	// mean = 1150, correction = (1000 - 1150) * 0.1 = -15 for every team
	sys.Normalize()

	assert.InDelta(t, 1185, sys.GetOrCreateTeam("A").Points, 1e-9)
	assert.InDelta(t, 1085, sys.GetOrCreateTeam("B").Points, 1e-9)
}

func TestNormalizeEmptySystem(t *testing.T) {
	sys := NewSystem()
	assert.NotPanics(t, func() { sys.Normalize() })
}

func TestRankingsOrderAndRounding(t *testing.T) {
	sys := NewSystem()
	sys.GetOrCreateTeam("Mid").Points = 1000.345
	sys.GetOrCreateTeam("Top").Points = 1250.0
	sys.GetOrCreateTeam("Bottom").Points = 800.5
	sys.GetOrCreateTeam("AlsoMid").Points = 1000.345

	rankings := sys.Rankings()
	require.Len(t, rankings, 4)

	assert.Equal(t, "Top", rankings[0].Team)
	assert.Equal(t, "AlsoMid", rankings[1].Team) // tie broken by name
	assert.Equal(t, "Mid", rankings[2].Team)
	assert.Equal(t, "Bottom", rankings[3].Team)
	assert.Equal(t, 1000.35, rankings[1].Points)
}

func TestRankingsDetachedFromLaterMatches(t *testing.T) {
	sys := NewSystem()
	sys.RecordMatch(Match{
		TeamA: "NAVI", TeamB: "FaZe", ScoreA: 16, ScoreB: 12,
		Map: "Mirage", Stage: "Group Stage",
		PositionsA: []string{"A Site"},
	})

	before := sys.Rankings()
	var navi Entry
	for _, e := range before {
		if e.Team == "NAVI" {
			navi = e
		}
	}
	require.Equal(t, 1, navi.Heatmap["A Site"])
	require.Equal(t, 1, navi.MapPerformance["Mirage"].Wins)

	sys.RecordMatch(Match{
		TeamA: "NAVI", TeamB: "FaZe", ScoreA: 16, ScoreB: 2,
		Map: "Mirage", Stage: "Group Stage",
		PositionsA: []string{"A Site", "A Site"},
	})

	// The earlier snapshot must not see the new match.
	assert.Equal(t, 1, navi.Heatmap["A Site"])
	assert.Equal(t, 1, navi.MapPerformance["Mirage"].Wins)
}

func TestExportJSONShape(t *testing.T) {
	sys := NewSystem()
	sys.RecordMatch(Match{
		TeamA: "NAVI", TeamB: "FaZe", ScoreA: 16, ScoreB: 12,
		Map: "Inferno", Stage: "Final",
		PositionsA: []string{"Banana"},
	})

	var buf bytes.Buffer
	require.NoError(t, sys.ExportJSON(&buf))

	var exported []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &exported))
	require.Len(t, exported, 2)

	for _, rec := range exported {
		for _, key := range []string{"team", "points", "map_performance", "heatmap"} {
			assert.Contains(t, rec, key, fmt.Sprintf("exported record missing %q", key))
		}
	}
}
