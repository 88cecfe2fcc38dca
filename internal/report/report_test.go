package report_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/report"
)

func houseEstimate() *epic.AssetEstimate {
	concrete := epic.Material{
		ID:             "concrete_25mpa",
		Name:           "Concrete 25 MPa",
		Category:       "Concrete",
		FunctionalUnit: epic.CubicMetre,
		Coefficients:   epic.Flows{Energy: 2437, Water: 3176, GHG: 310.8},
	}
	carpet := epic.Material{
		ID:             "carpet_nylon",
		Name:           "Nylon carpet",
		Category:       "Floor coverings",
		FunctionalUnit: epic.SquareMetre,
		Coefficients:   epic.Flows{Energy: 834.2, Water: 3342, GHG: 42.3},
		ServiceLife:    10,
	}

	asset := &epic.BuiltAsset{
		Name:     "Two bedroom house",
		Comments: "Preliminary take-off",
		Assemblies: []*epic.Assembly{
			{
				Name:       "Ground slab",
				Category:   "Structure",
				Units:      epic.CubicMetre,
				Quantities: []float64{12.5},
				Components: []epic.Component{{Material: concrete, Quantity: 1}},
			},
			{
				Name:       "Bedroom floors",
				Category:   "Finishes",
				Units:      epic.SquareMetre,
				Quantities: []float64{28},
				Components: []epic.Component{{Material: carpet, Quantity: 1}},
			},
		},
	}

	return asset.Estimate(50)
}

func TestWriteAssetText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteAssetText(&buf, houseEstimate()))

	out := buf.String()
	assert.Contains(t, out, "EPiC EMBODIED FLOWS REPORT")
	assert.Contains(t, out, "Two bedroom house")
	assert.Contains(t, out, "ASSEMBLY: Ground slab (Structure)")
	assert.Contains(t, out, "ASSEMBLY: Bedroom floors (Finishes)")
	assert.Contains(t, out, "Concrete 25 MPa")
	assert.Contains(t, out, "CATEGORY TOTALS")
	assert.Contains(t, out, "ASSET TOTALS:")
	assert.Contains(t, out, "Life cycle")
	assert.Contains(t, out, "EPiC "+epicdb.Version)
	assert.Contains(t, out, strings.Fields(epic.Disclaimer)[0])
}

func TestWriteAssetTextSkipped(t *testing.T) {
	asset := &epic.BuiltAsset{
		Name: "Shed",
		Assemblies: []*epic.Assembly{
			{
				Name:       "Walls",
				Units:      epic.CubicMetre,
				Quantities: []float64{3},
				Components: []epic.Component{{
					Material: epic.Material{
						Name:         "Straw bale",
						Coefficients: epic.Flows{Energy: 254.7, Water: 1123, GHG: math.NaN()},
					},
					Quantity: 1,
				}},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteAssetText(&buf, asset.Estimate(50)))
	assert.Contains(t, buf.String(), "skipped Straw bale")
}

func TestWriteAssetCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteAssetCSV(&buf, houseEstimate()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)

	// Header, two material rows, two assembly totals, one asset total.
	require.Len(t, records, 6)
	assert.Equal(t, "row", records[0][0])
	assert.Equal(t, "material", records[1][0])
	assert.Equal(t, "concrete_25mpa", records[1][4])
	assert.Equal(t, "assembly_total", records[2][0])
	assert.Equal(t, "asset_total", records[5][0])

	for _, record := range records[1:] {
		assert.Len(t, record, len(records[0]))
	}
}

func TestWriteAssetJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteAssetJSON(&buf, houseEstimate()))

	var decoded epic.AssetEstimate
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "Two bedroom house", decoded.Name)
	require.Len(t, decoded.Assemblies, 2)
	assert.InDelta(t, 2437.0*12.5, decoded.Assemblies[0].Flows.Initial.Energy, 1e-6)
}

func TestWriteAsset(t *testing.T) {
	estimate := houseEstimate()
	for _, format := range []report.Format{report.Text, report.CSV, report.JSON} {
		var buf bytes.Buffer
		require.NoError(t, report.WriteAsset(&buf, estimate, format))
		assert.NotZero(t, buf.Len())
	}
}

func TestParseFormat(t *testing.T) {
	format, err := report.ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, report.CSV, format)

	_, err = report.ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteMaterialsTable(t *testing.T) {
	var buf bytes.Buffer
	materials := []epic.Material{
		{
			ID:             "steel_structural",
			Name:           "Steel structural section (hot rolled)",
			Category:       "Metals",
			FunctionalUnit: epic.Kilogram,
			Coefficients:   epic.Flows{Energy: 38.8, Water: 67.2, GHG: 2.9},
		},
		{
			ID:             "sheep_wool_insulation",
			Name:           "Sheep wool insulation",
			Category:       "Insulation",
			FunctionalUnit: epic.CubicMetre,
			Coefficients:   epic.Flows{Energy: 694.8, Water: math.NaN(), GHG: 36.2},
		},
	}
	require.NoError(t, report.WriteMaterialsTable(&buf, materials))

	out := buf.String()
	assert.Contains(t, out, "steel_structural")
	assert.Contains(t, out, "38.8")
	assert.Contains(t, out, "n/a")
}

func TestWriteMaterialSheet(t *testing.T) {
	material := epic.Material{
		ID:             "carpet_nylon",
		OldID:          "FC02",
		Name:           "Nylon carpet",
		Category:       "Floor coverings",
		FunctionalUnit: epic.SquareMetre,
		Coefficients:   epic.Flows{Energy: 834.2, Water: 3342, GHG: 42.3},
		ProcessShares:  epic.Flows{Energy: 0.33, Water: 0.14, GHG: 0.31},
		DOI:            "10.26188/5e054d51862e5",
		Wastage:        7,
		ServiceLife:    10,
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteMaterialSheet(&buf, material))

	out := buf.String()
	assert.Contains(t, out, "Nylon carpet")
	assert.Contains(t, out, "FC02")
	assert.Contains(t, out, "https://doi.org/10.26188/5e054d51862e5")
	assert.Contains(t, out, "Embodied Energy")
	assert.Contains(t, out, "10 years")
}

func TestWriteMaterialsCSVRoundTrip(t *testing.T) {
	db, err := epicdb.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteMaterialsCSV(&buf, db.All()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, db.Len()+1)

	// Missing coefficients export as empty cells.
	found := false
	for _, record := range records[1:] {
		if record[0] == "sheep_wool_insulation" {
			found = true
			assert.Empty(t, record[6])
		}
	}
	assert.True(t, found)
}

func TestWriteStats(t *testing.T) {
	db, err := epicdb.Load()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteStats(&buf, db.Stats()))

	out := buf.String()
	assert.Contains(t, out, "Embodied Energy")
	assert.Contains(t, out, "Embodied Water")
	assert.Contains(t, out, "Embodied GHG")
	assert.Contains(t, out, "Concrete")

	buf.Reset()
	require.NoError(t, report.WriteStatsJSON(&buf, db.Stats()))
	var groups []epicdb.GroupStats
	require.NoError(t, json.Unmarshal(buf.Bytes(), &groups))
	assert.NotEmpty(t, groups)
}
