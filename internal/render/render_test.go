package render

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValid(t *testing.T) {
	payload := `[
		{"team": "NAVI", "points": 1042.5, "heatmap": {"A Site": 3}, "map_performance": {"Mirage": {"wins": 2, "losses": 0}}},
		{"team": "FaZe", "points": 957.5, "heatmap": {}}
	]`
	records, err := Decode([]byte(payload))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "NAVI", records[0].Team)
	assert.Equal(t, 1042.5, records[0].Points)
	assert.Equal(t, 3, records[0].Heatmap["A Site"])
	assert.NotNil(t, records[1].Heatmap)
}

func TestDecodeEmptyArray(t *testing.T) {
	records, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"team": "NAVI"`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, ErrRenderFailed)
}

func TestDecodeNotAnArray(t *testing.T) {
	_, err := Decode([]byte(`null`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
}

func TestDecodeMissingTeam(t *testing.T) {
	_, err := Decode([]byte(`[{"points": 1000, "heatmap": {}}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.Contains(t, err.Error(), "record 0")
}

func TestDecodeMissingHeatmap(t *testing.T) {
	_, err := Decode([]byte(`[{"team": "NAVI", "points": 1000}]`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSchema)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Contains(t, err.Error(), "NAVI")
}

func TestErrorBuckets(t *testing.T) {
	// Every narrow error matches the umbrella, and the narrows stay distinct.
	for _, err := range []error{ErrFetch, ErrDecode, ErrSchema} {
		assert.ErrorIs(t, err, ErrRenderFailed)
	}
	assert.False(t, errors.Is(ErrFetch, ErrDecode))
	assert.False(t, errors.Is(ErrDecode, ErrSchema))
}

func TestFlattenHeatmap(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]int
		want string
	}{
		{"two entries sorted", map[string]int{"B": 1, "A": 3}, "A: 3, B: 1"},
		{"single entry", map[string]int{"Mid": 7}, "Mid: 7"},
		{"empty", map[string]int{}, ""},
		{"multiword keys", map[string]int{"A Site": 2, "B Site": 5}, "A Site: 2, B Site: 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FlattenHeatmap(tt.in))
		})
	}
}

func TestFormatPoints(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1000, "1000"},
		{1042.5, "1042.5"},
		{999.99, "999.99"},
		{1000.3, "1000.3"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPoints(tt.in))
	}
}
