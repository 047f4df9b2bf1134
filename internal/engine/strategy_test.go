package engine

import (
	"encoding/json"
	"testing"

	"github.com/benbeisheim/checkers-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	for input, want := range map[string]Strategy{
		"basic":              Basic,
		"Basic Level":        Basic,
		"INTERMEDIATE":       Intermediate,
		"Intermediate Level": Intermediate,
		"advanced":           Advanced,
		"Advance Level":      Advanced,
	} {
		got, err := ParseStrategy(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseStrategy("grandmaster")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategyJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		S Strategy `json:"s"`
	}{Advanced})
	require.NoError(t, err)
	assert.JSONEq(t, `{"s":"advanced"}`, string(out))

	var in struct {
		S Strategy `json:"s"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"s":"intermediate"}`), &in))
	assert.Equal(t, Intermediate, in.S)

	assert.Error(t, json.Unmarshal([]byte(`{"s":"hard"}`), &in))
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
}

func TestEvaluateInitialBoard(t *testing.T) {
	b := model.NewBoard()
	for _, s := range []Strategy{Basic, Intermediate, Advanced} {
		assert.Zero(t, Evaluate(b, model.Move{}, s), s.String())
	}
}

func TestEvaluateAfterThreeCaptures(t *testing.T) {
	b := model.NewBoard()
	b.Remove(model.Square{Row: 5, Col: 0}, model.Square{Row: 5, Col: 2}, model.Square{Row: 5, Col: 4})
	assert.Equal(t, 3.0, Evaluate(b, model.Move{}, Basic))
}

func TestEvaluateKingsAndChainBonus(t *testing.T) {
	b, err := model.ParseBoard(
		".W......",
		"........",
		"...W....",
		"........",
		"........",
		"r.......",
		"........",
		"R.......",
	)
	require.NoError(t, err)

	single := model.Move{Captures: []model.Square{{Row: 3, Col: 2}}}
	double := model.Move{Captures: []model.Square{{Row: 3, Col: 2}, {Row: 5, Col: 4}}}
	triple := model.Move{Captures: []model.Square{{Row: 3, Col: 2}, {Row: 5, Col: 4}, {Row: 5, Col: 6}}}

	tests := []struct {
		name     string
		strategy Strategy
		last     model.Move
		want     float64
	}{
		{"basic ignores kings", Basic, double, 0},
		{"intermediate no capture", Intermediate, model.Move{}, 1},
		{"intermediate single", Intermediate, single, 2},
		{"intermediate double", Intermediate, double, 3},
		{"intermediate triple capped", Intermediate, triple, 3},
		{"advanced halves kings", Advanced, model.Move{}, 0.5},
		{"advanced double", Advanced, double, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(b, tt.last, tt.strategy))
		})
	}
}

func TestEvaluateUnknownStrategyPanics(t *testing.T) {
	assert.Panics(t, func() { Evaluate(model.NewBoard(), model.Move{}, Strategy(7)) })
}
