package epicdb

import (
	"slices"
	"strings"

	"gonum.org/v1/gonum/stat"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/must"
)

// Summary describes the distribution of one flow coefficient across a
// group of materials.
type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// GroupStats summarises the coefficients of every complete material in
// one category sharing a functional unit.
type GroupStats struct {
	Category       string    `json:"category"`
	FunctionalUnit epic.Unit `json:"functional_unit"`
	Count          int       `json:"count"`

	Energy Summary `json:"energy"`
	Water  Summary `json:"water"`
	GHG    Summary `json:"ghg"`
}

// Stats summarises coefficient distributions per category and functional
// unit. Materials with missing coefficients are left out. Groups are
// ordered by category then functional unit.
func (db *DB) Stats() []GroupStats {
	type groupKey struct {
		category string
		unit     epic.Unit
	}

	groups := make(map[groupKey][]epic.Material)
	for _, material := range db.materials {
		if material.Incomplete() {
			continue
		}
		key := groupKey{category: material.Category, unit: material.FunctionalUnit}
		groups[key] = append(groups[key], material)
	}

	all := make([]GroupStats, 0, len(groups))
	for key, materials := range groups {
		all = append(all, GroupStats{
			Category:       key.category,
			FunctionalUnit: key.unit,
			Count:          len(materials),
			Energy:         summarise(materials, epic.Energy),
			Water:          summarise(materials, epic.Water),
			GHG:            summarise(materials, epic.GHG),
		})
	}

	slices.SortFunc(all, func(a, b GroupStats) int {
		if c := strings.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return strings.Compare(string(a.FunctionalUnit), string(b.FunctionalUnit))
	})

	return all
}

func summarise(materials []epic.Material, flow epic.Flow) Summary {
	must.Assert(len(materials) > 0, "cannot summarise an empty material group")

	values := make([]float64, 0, len(materials))
	for _, material := range materials {
		values = append(values, material.Coefficients.Get(flow))
	}
	slices.Sort(values)

	// StdDev divides by n-1 and single member groups exist.
	stdDev := 0.0
	if len(values) > 1 {
		stdDev = stat.StdDev(values, nil)
	}

	return Summary{
		Mean:   stat.Mean(values, nil),
		StdDev: stdDev,
		Min:    values[0],
		Max:    values[len(values)-1],
		Median: stat.Quantile(0.5, stat.Empirical, values, nil),
	}
}
