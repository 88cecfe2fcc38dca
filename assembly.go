package epic

import (
	"log/slog"
	"math"
)

// DefaultDesignLife is the building design life in years assumed when a
// document does not set its own.
const DefaultDesignLife = 50.0

// Component is one material layer of an assembly: the number of
// functional units of the material needed per assembly unit. A concrete
// wall measured in m³ carries roughly 2400 kg of 25 MPa concrete per
// cubic metre, so its component quantity is 2400.
type Component struct {
	Material Material `json:"material"`
	Quantity float64  `json:"quantity"`
}

// Assembly groups materials into one building element, a wall or a slab
// or a roof, measured in one or more take-off quantities.
type Assembly struct {
	Name string `json:"name"`

	// Category groups assemblies in built-asset reports. Empty falls
	// back to the assembly name.
	Category string `json:"category,omitempty"`

	Comments string `json:"comments,omitempty"`

	// Units of the measured quantities.
	Units Unit `json:"units"`

	// Quantities are the measured take-off amounts in Units. Their sum
	// scales every component.
	Quantities []float64 `json:"quantities"`

	// WastageOverride replaces the wastage percentage of every component
	// material when set.
	WastageOverride *float64 `json:"wastage_override,omitempty"`

	// ServiceLifeOverride replaces the service life of every component
	// material when set.
	ServiceLifeOverride *float64 `json:"service_life_override,omitempty"`

	Components []Component `json:"components"`
}

// TotalQuantity returns the sum of the measured quantities.
func (a *Assembly) TotalQuantity() float64 {
	total := 0.0
	for _, q := range a.Quantities {
		total += q
	}
	return total
}

// CategoryName returns the reporting category of the assembly.
func (a *Assembly) CategoryName() string {
	if a.Category != "" {
		return a.Category
	}
	return a.Name
}

// MaterialEstimate is the contribution of one component to an assembly
// estimate.
type MaterialEstimate struct {
	MaterialID     string  `json:"material_id"`
	MaterialName   string  `json:"material_name"`
	FunctionalUnit Unit    `json:"functional_unit"`
	Quantity       float64 `json:"quantity"`
	Wastage        float64 `json:"wastage"`
	ServiceLife    float64 `json:"service_life"`
	Replacements   float64 `json:"replacements"`

	Flows LifeCycle `json:"flows"`
}

// Estimate holds the embodied flows of one assembly over a design life.
type Estimate struct {
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Comments      string    `json:"comments,omitempty"`
	Units         Unit      `json:"units"`
	TotalQuantity float64   `json:"total_quantity"`
	DesignLife    float64   `json:"design_life"`
	Flows         LifeCycle `json:"flows"`

	Materials []MaterialEstimate `json:"materials"`

	// Skipped names the materials left out of the totals because the
	// database holds no usable coefficients for them.
	Skipped []string `json:"skipped,omitempty"`
}

// Estimate computes the initial and recurring embodied flows of the
// assembly over the given design life in years.
//
// For each component the initial flows are the effective coefficients
// multiplied by the total functional units and the wastage factor. The
// recurring flows multiply the initial flows by the number of
// replacements within the design life. Assembly-level overrides replace
// the material wastage and service life before either step. Components
// whose material misses a coefficient are skipped, logged and listed on
// the estimate.
func (a *Assembly) Estimate(designLife float64) *Estimate {
	estimate := &Estimate{
		Name:          a.Name,
		Category:      a.CategoryName(),
		Comments:      a.Comments,
		Units:         a.Units,
		TotalQuantity: a.TotalQuantity(),
		DesignLife:    designLife,
		Materials:     make([]MaterialEstimate, 0, len(a.Components)),
	}

	if len(a.Components) == 0 {
		slog.Warn("assembly has no material components", "assembly", a.Name)
	}
	if estimate.TotalQuantity == 0 && len(a.Components) > 0 {
		slog.Warn("assembly has no measured quantities", "assembly", a.Name, "units", a.Units)
	}

	for _, component := range a.Components {
		material := component.Material
		if a.WastageOverride != nil {
			material.Wastage = *a.WastageOverride
		}
		if a.ServiceLifeOverride != nil {
			material.ServiceLife = *a.ServiceLifeOverride
		}

		if material.Incomplete() {
			slog.Warn("skipping material with missing coefficients",
				"assembly", a.Name,
				"material", material.Name)
			estimate.Skipped = append(estimate.Skipped, material.Name)
			continue
		}

		quantity := component.Quantity * estimate.TotalQuantity
		wastage := math.Max(material.Wastage, 0)
		replacements := material.Replacements(designLife)

		initial := material.EffectiveCoefficients().Scale(quantity * (1 + wastage/100))

		materialEstimate := MaterialEstimate{
			MaterialID:     material.ID,
			MaterialName:   material.Name,
			FunctionalUnit: material.FunctionalUnit,
			Quantity:       quantity,
			Wastage:        wastage,
			ServiceLife:    material.ServiceLife,
			Replacements:   replacements,
			Flows: LifeCycle{
				Initial:   initial,
				Recurring: initial.Scale(replacements),
			},
		}

		estimate.Materials = append(estimate.Materials, materialEstimate)
		estimate.Flows = estimate.Flows.Add(materialEstimate.Flows)
	}

	return estimate
}
