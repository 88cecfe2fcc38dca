package epicdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
)

func TestStats(t *testing.T) {
	db := load(t)

	groups := db.Stats()
	require.NotEmpty(t, groups)

	byKey := make(map[string]epicdb.GroupStats)
	previous := ""
	for _, group := range groups {
		key := group.Category + "/" + string(group.FunctionalUnit)
		byKey[key] = group
		assert.GreaterOrEqual(t, key, previous)
		previous = key
	}

	concrete, ok := byKey["Concrete/m³"]
	require.True(t, ok)
	assert.Equal(t, 8, concrete.Count)
	assert.Equal(t, 2113.0, concrete.Energy.Min)
	assert.Equal(t, 3518.0, concrete.Energy.Max)
	assert.InDelta(t, 2713.6, concrete.Energy.Mean, 0.1)
	assert.Equal(t, 2437.0, concrete.Energy.Median)
	assert.Greater(t, concrete.Energy.StdDev, 0.0)
	assert.Equal(t, epic.CubicMetre, concrete.FunctionalUnit)

	// Incomplete materials stay out of the statistics.
	insulation, ok := byKey["Insulation/m³"]
	require.True(t, ok)
	assert.Equal(t, 6, insulation.Count)

	miscellaneous, ok := byKey["Miscellaneous/m³"]
	require.True(t, ok)
	assert.Equal(t, 1, miscellaneous.Count)
	assert.Equal(t, 0.0, miscellaneous.Energy.StdDev)
	assert.Equal(t, miscellaneous.Energy.Min, miscellaneous.Energy.Max)
}
