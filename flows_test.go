package epic_test

import (
	"math"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

func TestFlowsArithmetic(t *testing.T) {
	f := epic.Flows{Energy: 10, Water: 100, GHG: 1}

	sum := f.Add(epic.Flows{Energy: 5, Water: 50, GHG: 0.5})
	assert.Equal(t, epic.Flows{Energy: 15, Water: 150, GHG: 1.5}, sum)

	assert.Equal(t, epic.Flows{Energy: 20, Water: 200, GHG: 2}, f.Scale(2))
	assert.True(t, epic.Flows{}.IsZero())
	assert.False(t, f.IsZero())

	assert.Equal(t, 10.0, f.Get(epic.Energy))
	assert.Equal(t, 100.0, f.Get(epic.Water))
	assert.Equal(t, 1.0, f.Get(epic.GHG))
}

func TestFlowsComplete(t *testing.T) {
	assert.True(t, epic.Flows{}.Complete())
	assert.True(t, epic.Flows{Energy: 1, Water: 2, GHG: 3}.Complete())
	assert.False(t, epic.Flows{Energy: math.NaN(), Water: 2, GHG: 3}.Complete())
	assert.False(t, epic.Flows{Energy: 1, Water: math.Inf(1), GHG: 3}.Complete())
}

func TestFlowsJSONMissingCoefficients(t *testing.T) {
	data, err := json.Marshal(epic.Flows{Energy: 38.8, Water: math.NaN(), GHG: 2.9})
	require.NoError(t, err)
	assert.JSONEq(t, `{"energy":38.8,"water":null,"ghg":2.9}`, string(data))

	var decoded epic.Flows
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 38.8, decoded.Energy)
	assert.True(t, math.IsNaN(decoded.Water))
	assert.Equal(t, 2.9, decoded.GHG)
}

func TestLifeCycleTotal(t *testing.T) {
	lc := epic.LifeCycle{
		Initial:   epic.Flows{Energy: 100, Water: 1000, GHG: 10},
		Recurring: epic.Flows{Energy: 50, Water: 500, GHG: 5},
	}
	assert.Equal(t, epic.Flows{Energy: 150, Water: 1500, GHG: 15}, lc.Total())

	sum := lc.Add(lc)
	assert.Equal(t, epic.Flows{Energy: 200, Water: 2000, GHG: 20}, sum.Initial)
	assert.Equal(t, epic.Flows{Energy: 100, Water: 1000, GHG: 10}, sum.Recurring)
}

func TestFlowLabels(t *testing.T) {
	assert.Equal(t, "energy", epic.Energy.String())
	assert.Equal(t, "MJ", epic.Energy.Unit())
	assert.Equal(t, "Embodied Water", epic.Water.Label())
	assert.Equal(t, "kgCO₂e", epic.GHG.Unit())
}

func TestParseUnit(t *testing.T) {
	for spelling, want := range map[string]epic.Unit{
		"kg":   epic.Kilogram,
		"m²":   epic.SquareMetre,
		"m2":   epic.SquareMetre,
		"m³":   epic.CubicMetre,
		"m3":   epic.CubicMetre,
		"m":    epic.Metre,
		"no.":  epic.Item,
		"no":   epic.Item,
		"item": epic.Item,
		"each": epic.Item,
	} {
		got, err := epic.ParseUnit(spelling)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := epic.ParseUnit("tonnes")
	assert.Error(t, err)
}
