package epicdb_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	db := load(t)

	results := db.Search("glass wool", 3)
	require.NotEmpty(t, results)
	assert.Equal(t, "Glass wool insulation", results[0].Name)

	results = db.Search("float glass", 0)
	require.NotEmpty(t, results)
	assert.True(t, strings.HasPrefix(results[0].Name, "Float glass"))

	// Reordered words still land on the right material through the
	// subquery fallback.
	results = db.Search("glass float", 1)
	require.Len(t, results, 1)
	assert.True(t, strings.HasPrefix(results[0].Name, "Float glass"))

	assert.Empty(t, db.Search("zzzzqqqq", 5))
}

func TestSearchLimit(t *testing.T) {
	db := load(t)

	assert.Len(t, db.Search("concrete", 2), 2)
	assert.Greater(t, len(db.Search("concrete", 0)), 2)
}

func TestSuggest(t *testing.T) {
	db := load(t)

	suggestions := db.Suggest("concret 25", 3)
	require.NotEmpty(t, suggestions)
	assert.Contains(t, suggestions, "Concrete 25 MPa")
	assert.LessOrEqual(t, len(suggestions), 3)
}
