package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(team string, points float64, heatmap map[string]int) TeamRanking {
	return TeamRanking{Team: team, Points: points, Heatmap: heatmap}
}

func TestRenderRowsInArrayOrder(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	// Points deliberately out of order: rank is positional, never computed.
	err := r.Render([]TeamRanking{
		record("Underdog", 900, map[string]int{"Mid": 1}),
		record("Favorite", 1200, map[string]int{"A Site": 4}),
	})
	require.NoError(t, err)

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "<td>1</td><td>Underdog</td><td>900</td><td>Mid: 1</td>")
	assert.Contains(t, lines[1], "<td>2</td><td>Favorite</td><td>1200</td><td>A Site: 4</td>")
}

func TestRenderEmptySequence(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	require.NoError(t, r.Render(nil))
	assert.Empty(t, buf.String())
}

func TestRenderAppendsAcrossPasses(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	require.NoError(t, r.Render([]TeamRanking{record("T1", 1000, map[string]int{})}))
	require.NoError(t, r.Render([]TeamRanking{record("T2", 990, map[string]int{})}))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "<tr>"))
	assert.Less(t, strings.Index(out, "T1"), strings.Index(out, "T2"))
	// Each pass numbers from 1 on its own.
	assert.Equal(t, 2, strings.Count(out, "<td>1</td>"))
}

func TestRenderEscapesTeamNames(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	require.NoError(t, r.Render([]TeamRanking{
		record("<script>alert(1)</script>", 1000, map[string]int{}),
	}))

	assert.NotContains(t, buf.String(), "<script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestRenderPageDocument(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage(&buf, []TeamRanking{
		record("NAVI", 1042.55, map[string]int{"B Site": 2, "A Site": 3}),
		record("FaZe", 957.45, map[string]int{}),
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	for _, header := range []string{"<th>Rank</th>", "<th>Team</th>", "<th>Points</th>", "<th>Heatmap</th>"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "A Site: 3, B Site: 2")
	assert.Less(t, strings.Index(out, "NAVI"), strings.Index(out, "FaZe"))
	assert.Contains(t, out, "2 team(s)")
}

func TestRenderPageIdempotent(t *testing.T) {
	records := []TeamRanking{record("NAVI", 1000, map[string]int{})}

	var first, second bytes.Buffer
	require.NoError(t, RenderPage(&first, records))
	require.NoError(t, RenderPage(&second, records))

	assert.Equal(t, 1, strings.Count(first.String(), "NAVI"))
	assert.Equal(t, 1, strings.Count(second.String(), "NAVI"))
}
