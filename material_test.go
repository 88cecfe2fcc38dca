package epic_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

func TestEffectiveCoefficients(t *testing.T) {
	m := epic.Material{
		Coefficients: epic.Flows{Energy: 100, Water: 1000, GHG: 10},
	}
	assert.Equal(t, m.Coefficients, m.EffectiveCoefficients())

	m.Reductions = epic.Flows{Energy: 25, Water: 50, GHG: 100}
	got := m.EffectiveCoefficients()
	assert.Equal(t, 75.0, got.Energy)
	assert.Equal(t, 500.0, got.Water)
	assert.Equal(t, 0.0, got.GHG)

	// Reductions outside [0, 100] clamp.
	m.Reductions = epic.Flows{Energy: 150, Water: -20, GHG: math.NaN()}
	got = m.EffectiveCoefficients()
	assert.Equal(t, 0.0, got.Energy)
	assert.Equal(t, 1000.0, got.Water)
	assert.Equal(t, 10.0, got.GHG)
}

func TestReplacements(t *testing.T) {
	m := epic.Material{ServiceLife: 10}
	assert.Equal(t, 5.0, m.Replacements(50))
	assert.Equal(t, 0.0, m.Replacements(5))
	assert.Equal(t, 0.0, m.Replacements(0))
	assert.Equal(t, 0.0, m.Replacements(-10))

	m.ServiceLife = 15
	assert.Equal(t, 3.0, m.Replacements(50))

	m.ServiceLife = 25
	assert.Equal(t, 2.0, m.Replacements(50))

	m.ServiceLife = 60
	assert.Equal(t, 0.0, m.Replacements(50))

	m.ServiceLife = 0
	assert.Equal(t, 0.0, m.Replacements(50))
}

func TestIncomplete(t *testing.T) {
	m := epic.Material{Coefficients: epic.Flows{Energy: 1, Water: 2, GHG: 3}}
	assert.False(t, m.Incomplete())

	m.Coefficients.GHG = math.NaN()
	assert.True(t, m.Incomplete())
}
