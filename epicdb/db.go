// Package epicdb bundles the EPiC database of embodied environmental
// flow coefficients and indexes it for lookup by id, legacy id, name and
// category.
package epicdb

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/must"
)

//go:embed epic_materials.csv
var materialsCSV []byte

const (
	// Version is the edition of the bundled database.
	Version = "2024"

	// DOI resolves to the published database the bundled coefficients
	// come from.
	DOI = "10.26188/5dc228ef98c5a"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrUnknownCategory  = errors.New("unknown category")
)

// Column layout of the bundled materials file.
const (
	colID = iota
	colOldID
	colName
	colCategory
	colFunctionalUnit
	colEnergy
	colWater
	colGHG
	colDensity
	colWastage
	colServiceLife
	colShareEnergy
	colShareWater
	colShareGHG
	colDOI
	columns
)

// DB is the in-memory EPiC database. It is immutable after loading and
// safe for concurrent use.
type DB struct {
	materials  map[string]epic.Material
	legacy     map[string]string
	categories map[string][]string
	corpus     []string
	corpusIDs  []string
}

// Load parses the bundled materials file and indexes it.
func Load() (*DB, error) {
	db := &DB{
		materials:  make(map[string]epic.Material),
		legacy:     make(map[string]string),
		categories: make(map[string][]string),
	}

	reader := csv.NewReader(bytes.NewReader(materialsCSV))
	reader.FieldsPerRecord = columns

	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("reading materials header: %w", err)
	}

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading materials: %w", err)
		}
		line++

		material, err := parseMaterial(record)
		if err != nil {
			return nil, fmt.Errorf("materials line %d: %w", line, err)
		}
		if _, exists := db.materials[material.ID]; exists {
			return nil, fmt.Errorf("materials line %d: duplicate id %q", line, material.ID)
		}

		db.index(material)
	}

	for _, ids := range db.categories {
		slices.SortFunc(ids, func(a, b string) int {
			return strings.Compare(db.materials[a].Name, db.materials[b].Name)
		})
	}

	return db, nil
}

// MustLoad is Load for program initialization paths where a broken
// bundled database is unrecoverable.
func MustLoad() *DB {
	db, err := Load()
	must.NoError(err)
	return db
}

func (db *DB) index(material epic.Material) {
	db.materials[material.ID] = material
	db.legacy[normalize(material.Name)] = material.ID
	if material.OldID != "" {
		db.legacy[normalize(material.OldID)] = material.ID
	}
	db.categories[material.Category] = append(db.categories[material.Category], material.ID)
	db.corpus = append(db.corpus, material.Name+" "+material.Category)
	db.corpusIDs = append(db.corpusIDs, material.ID)
}

// Len returns the number of bundled materials.
func (db *DB) Len() int {
	return len(db.materials)
}

// Material returns the material with the given id. Ids from older
// database editions and exact material names are accepted as fallbacks.
func (db *DB) Material(id string) (epic.Material, error) {
	if material, ok := db.materials[id]; ok {
		return material, nil
	}
	if canonical, ok := db.legacy[normalize(id)]; ok {
		return db.materials[canonical], nil
	}
	return epic.Material{}, fmt.Errorf("%w: %q", ErrMaterialNotFound, id)
}

// Categories returns every material category in alphabetical order.
func (db *DB) Categories() []string {
	categories := make([]string, 0, len(db.categories))
	for category := range db.categories {
		categories = append(categories, category)
	}
	slices.Sort(categories)
	return categories
}

// Materials returns the materials of one category sorted by name.
func (db *DB) Materials(category string) ([]epic.Material, error) {
	ids, ok := db.categories[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	materials := make([]epic.Material, 0, len(ids))
	for _, id := range ids {
		materials = append(materials, db.materials[id])
	}
	return materials, nil
}

// All returns every material sorted by category then name.
func (db *DB) All() []epic.Material {
	all := make([]epic.Material, 0, len(db.materials))
	for _, category := range db.Categories() {
		materials, err := db.Materials(category)
		must.NoError(err)
		all = append(all, materials...)
	}
	return all
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseMaterial(record []string) (epic.Material, error) {
	id := strings.TrimSpace(record[colID])
	name := strings.TrimSpace(record[colName])
	category := strings.TrimSpace(record[colCategory])
	if id == "" || name == "" || category == "" {
		return epic.Material{}, errors.New("id, name and category are required")
	}

	unit, err := epic.ParseUnit(strings.TrimSpace(record[colFunctionalUnit]))
	if err != nil {
		return epic.Material{}, fmt.Errorf("material %q: %w", id, err)
	}

	return epic.Material{
		ID:             id,
		OldID:          strings.TrimSpace(record[colOldID]),
		Name:           name,
		Category:       category,
		FunctionalUnit: unit,
		Coefficients: epic.Flows{
			Energy: coefficient(record[colEnergy]),
			Water:  coefficient(record[colWater]),
			GHG:    coefficient(record[colGHG]),
		},
		Density: optionalNumber(record[colDensity]),
		ProcessShares: epic.Flows{
			Energy: share(record[colShareEnergy]),
			Water:  share(record[colShareWater]),
			GHG:    share(record[colShareGHG]),
		},
		DOI:         strings.TrimSpace(record[colDOI]),
		Wastage:     wastagePercent(record[colWastage]),
		ServiceLife: serviceLifeYears(record[colServiceLife]),
	}, nil
}

// coefficient parses one flow coefficient cell. Missing or malformed
// values load as NaN so estimation can skip the material and warn.
func coefficient(cell string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

// wastagePercent converts the database multiplier convention, 1.05 for
// five percent extra material, into a percentage.
func wastagePercent(cell string) float64 {
	multiplier, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || multiplier < 1 {
		return 0
	}
	return (multiplier - 1) * 100
}

// serviceLifeYears parses the service life cell. The database marks
// materials lasting the whole design life with -1 or an empty cell,
// both load as zero.
func serviceLifeYears(cell string) float64 {
	years, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || years <= 0 {
		return 0
	}
	return years
}

func share(cell string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || value < 0 {
		return 0
	}
	return math.Min(value, 1)
}

func optionalNumber(cell string) float64 {
	value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}
