// Package design reads built asset definition documents. A document
// names the asset, its design life and its assemblies, and references
// materials by database id. Documents are written in YAML or JSON.
package design

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

// DefaultAssetName names assets whose document does not.
const DefaultAssetName = "EPiC Built Asset"

// Document is the root of a built asset definition.
type Document struct {
	Name     string `yaml:"name" json:"name"`
	Comments string `yaml:"comments,omitempty" json:"comments,omitempty"`

	// DesignLife of the asset in years. Unset falls back to the
	// toolkit default, an explicit zero disables recurring flows.
	DesignLife *float64 `yaml:"design_life,omitempty" json:"design_life,omitempty"`

	Assemblies []AssemblyDef `yaml:"assemblies" json:"assemblies"`
}

// AssemblyDef defines one assembly of the asset.
type AssemblyDef struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category,omitempty" json:"category,omitempty"`
	Comments string `yaml:"comments,omitempty" json:"comments,omitempty"`

	// Units of the measured quantities, m³ when empty.
	Units string `yaml:"units,omitempty" json:"units,omitempty"`

	Quantities []float64 `yaml:"quantities" json:"quantities"`

	// Wastage and ServiceLife override the defaults of every material
	// in the assembly when set.
	Wastage     *float64 `yaml:"wastage,omitempty" json:"wastage,omitempty"`
	ServiceLife *float64 `yaml:"service_life,omitempty" json:"service_life,omitempty"`

	Materials []MaterialDef `yaml:"materials" json:"materials"`
}

// MaterialDef references a database material and sets how much of it one
// assembly unit carries.
type MaterialDef struct {
	// Material is a database id. Legacy ids and exact names resolve
	// too.
	Material string `yaml:"material" json:"material"`

	// Quantity of functional units per assembly unit.
	Quantity float64 `yaml:"quantity" json:"quantity"`

	// Wastage and ServiceLife override the database defaults when set.
	Wastage     *float64 `yaml:"wastage,omitempty" json:"wastage,omitempty"`
	ServiceLife *float64 `yaml:"service_life,omitempty" json:"service_life,omitempty"`

	// Per-flow percentage reductions of the coefficients.
	EnergyReduction float64 `yaml:"energy_reduction,omitempty" json:"energy_reduction,omitempty"`
	WaterReduction  float64 `yaml:"water_reduction,omitempty" json:"water_reduction,omitempty"`
	GHGReduction    float64 `yaml:"ghg_reduction,omitempty" json:"ghg_reduction,omitempty"`

	Comments string `yaml:"comments,omitempty" json:"comments,omitempty"`
}

// Parse decodes a YAML document, fills defaults and validates it.
// Unknown fields are rejected.
func Parse(r io.Reader) (*Document, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	document := new(Document)
	if err := decoder.Decode(document); err != nil {
		return nil, fmt.Errorf("decoding design document: %w", err)
	}

	document.Normalize()
	if err := document.Validate(); err != nil {
		return nil, err
	}
	return document, nil
}

// ParseJSON decodes a JSON document, fills defaults and validates it.
func ParseJSON(data []byte) (*Document, error) {
	document := new(Document)
	if err := json.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("decoding design document: %w", err)
	}

	document.Normalize()
	if err := document.Validate(); err != nil {
		return nil, err
	}
	return document, nil
}

// ParseFile reads a document from disk, picking the codec from the file
// extension.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading design document: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ParseJSON(data)
	}
	return Parse(bytes.NewReader(data))
}

// Normalize fills the document defaults: asset and assembly names and
// assembly units.
func (d *Document) Normalize() {
	if strings.TrimSpace(d.Name) == "" {
		d.Name = DefaultAssetName
	}
	for i := range d.Assemblies {
		if strings.TrimSpace(d.Assemblies[i].Name) == "" {
			d.Assemblies[i].Name = fmt.Sprintf("Assembly %d", i+1)
		}
		if d.Assemblies[i].Units == "" {
			d.Assemblies[i].Units = string(epic.CubicMetre)
		}
	}
}

// DesignLifeYears returns the design life to estimate over.
func (d *Document) DesignLifeYears() float64 {
	if d.DesignLife == nil {
		return epic.DefaultDesignLife
	}
	return max(*d.DesignLife, 0)
}

// Validate checks the document invariants. Negative wastage and out of
// range reductions are not errors, they clamp during estimation.
func (d *Document) Validate() error {
	if d.DesignLife != nil && *d.DesignLife < 0 {
		return fmt.Errorf("design life cannot be negative, got %v", *d.DesignLife)
	}
	if len(d.Assemblies) == 0 {
		return errors.New("document defines no assemblies")
	}

	for _, assembly := range d.Assemblies {
		if _, err := epic.ParseUnit(assembly.Units); err != nil {
			return fmt.Errorf("assembly %q: %w", assembly.Name, err)
		}
		for _, quantity := range assembly.Quantities {
			if quantity < 0 {
				return fmt.Errorf("assembly %q: negative quantity %v", assembly.Name, quantity)
			}
		}
		if assembly.ServiceLife != nil && *assembly.ServiceLife < 0 {
			return fmt.Errorf("assembly %q: negative service life", assembly.Name)
		}
		for _, material := range assembly.Materials {
			if strings.TrimSpace(material.Material) == "" {
				return fmt.Errorf("assembly %q: material reference is empty", assembly.Name)
			}
			if material.Quantity < 0 {
				return fmt.Errorf("assembly %q: material %q: negative quantity %v",
					assembly.Name, material.Material, material.Quantity)
			}
			if material.ServiceLife != nil && *material.ServiceLife < 0 {
				return fmt.Errorf("assembly %q: material %q: negative service life",
					assembly.Name, material.Material)
			}
		}
	}

	return nil
}
