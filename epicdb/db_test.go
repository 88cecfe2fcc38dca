package epicdb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
)

func load(t *testing.T) *epicdb.DB {
	t.Helper()
	db, err := epicdb.Load()
	require.NoError(t, err)
	return db
}

func TestLoad(t *testing.T) {
	db := load(t)
	assert.Equal(t, 82, db.Len())
	assert.NotEmpty(t, epicdb.Version)
	assert.NotEmpty(t, epicdb.DOI)
}

func TestMaterialLookup(t *testing.T) {
	db := load(t)

	material, err := db.Material("concrete_25mpa")
	require.NoError(t, err)
	assert.Equal(t, "Concrete 25 MPa", material.Name)
	assert.Equal(t, "Concrete", material.Category)
	assert.Equal(t, epic.CubicMetre, material.FunctionalUnit)
	assert.Equal(t, 2437.0, material.Coefficients.Energy)
	assert.Equal(t, 3176.0, material.Coefficients.Water)
	assert.Equal(t, 310.8, material.Coefficients.GHG)

	// Ids from older database editions resolve to the same material.
	byOldID, err := db.Material("CO02")
	require.NoError(t, err)
	assert.Equal(t, material.ID, byOldID.ID)

	// Exact names resolve too, case folded.
	byName, err := db.Material("concrete 25 mpa")
	require.NoError(t, err)
	assert.Equal(t, material.ID, byName.ID)

	_, err = db.Material("unobtainium")
	assert.ErrorIs(t, err, epicdb.ErrMaterialNotFound)
}

func TestMaterialConventions(t *testing.T) {
	db := load(t)

	// Wastage multipliers load as percentages.
	concrete, err := db.Material("concrete_25mpa")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, concrete.Wastage, 1e-9)

	// A service life of -1 loads as zero, never replaced.
	assert.Equal(t, 0.0, concrete.ServiceLife)
	assert.Equal(t, 0.0, concrete.Replacements(50))

	carpet, err := db.Material("carpet_nylon")
	require.NoError(t, err)
	assert.Equal(t, 10.0, carpet.ServiceLife)
	assert.Equal(t, 5.0, carpet.Replacements(50))

	// Missing coefficient cells load as NaN and flag the material.
	sheepWool, err := db.Material("sheep_wool_insulation")
	require.NoError(t, err)
	assert.True(t, sheepWool.Incomplete())

	strawBale, err := db.Material("straw_bale")
	require.NoError(t, err)
	assert.True(t, strawBale.Incomplete())

	steel, err := db.Material("steel_structural")
	require.NoError(t, err)
	assert.False(t, steel.Incomplete())
	assert.Equal(t, 7850.0, steel.Density)
	assert.Equal(t, 0.57, steel.ProcessShares.Energy)
	assert.NotEmpty(t, steel.DOI)
}

func TestCategories(t *testing.T) {
	db := load(t)

	categories := db.Categories()
	assert.Len(t, categories, 14)
	assert.IsIncreasing(t, categories)
	assert.Contains(t, categories, "Concrete")
	assert.Contains(t, categories, "Metals")
	assert.Contains(t, categories, "Timber and wood products")
}

func TestMaterialsByCategory(t *testing.T) {
	db := load(t)

	concrete, err := db.Materials("Concrete")
	require.NoError(t, err)
	assert.Len(t, concrete, 8)
	names := make([]string, 0, len(concrete))
	for _, material := range concrete {
		assert.Equal(t, "Concrete", material.Category)
		names = append(names, material.Name)
	}
	assert.IsIncreasing(t, names)

	_, err = db.Materials("Antimatter")
	assert.ErrorIs(t, err, epicdb.ErrUnknownCategory)
}

func TestAll(t *testing.T) {
	db := load(t)

	all := db.All()
	assert.Len(t, all, db.Len())

	categories := make([]string, 0, len(all))
	for _, material := range all {
		categories = append(categories, material.Category)
	}
	assert.IsNonDecreasing(t, categories)
}
