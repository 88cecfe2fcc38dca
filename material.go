package epic

import "math"

// Material is a single EPiC database entry: the embodied flow coefficients
// of one construction material per functional unit, together with the
// database defaults for wastage and service life. Callers may tune the
// defaults and apply per-flow reduction factors before estimating.
type Material struct {
	ID             string `json:"id"`
	OldID          string `json:"old_id,omitempty"`
	Name           string `json:"name"`
	Category       string `json:"category"`
	FunctionalUnit Unit   `json:"functional_unit"`

	// Coefficients are the embodied flows per functional unit. A missing
	// database value is held as NaN.
	Coefficients Flows `json:"coefficients"`

	// Density in kg/m³, zero when the database does not provide one.
	Density float64 `json:"density,omitempty"`

	// ProcessShares is the proportion of each coefficient derived from
	// process data, between 0 and 1. The remainder comes from
	// input-output data.
	ProcessShares Flows `json:"process_shares"`

	// DOI resolves to the material information sheet.
	DOI string `json:"doi,omitempty"`

	// Wastage is the percentage of extra material purchased on top of
	// the installed quantity. 5 means five percent.
	Wastage float64 `json:"wastage"`

	// ServiceLife is the number of years before the installed material
	// is replaced. Zero means it lasts the whole design life.
	ServiceLife float64 `json:"service_life"`

	// Reductions are per-flow percentage cuts applied to the
	// coefficients, for materials with supplier-specific performance.
	// Values are clamped to [0, 100].
	Reductions Flows `json:"reductions"`

	Comments string `json:"comments,omitempty"`
}

// EffectiveCoefficients returns the material coefficients with the
// reduction factors applied.
func (m Material) EffectiveCoefficients() Flows {
	return Flows{
		Energy: reduce(m.Coefficients.Energy, m.Reductions.Energy),
		Water:  reduce(m.Coefficients.Water, m.Reductions.Water),
		GHG:    reduce(m.Coefficients.GHG, m.Reductions.GHG),
	}
}

func reduce(coefficient float64, percent float64) float64 {
	return coefficient * (100 - clampPercent(percent)) / 100
}

func clampPercent(percent float64) float64 {
	if math.IsNaN(percent) || percent < 0 {
		return 0
	}
	return math.Min(percent, 100)
}

// Incomplete reports whether any coefficient is missing from the
// database. Incomplete materials are skipped during estimation.
func (m Material) Incomplete() bool {
	return !m.Coefficients.Complete()
}

// Replacements returns how many whole replacements of the material occur
// over the given design life in years. A material outliving the design
// life, or one with no service life, is never replaced.
func (m Material) Replacements(designLife float64) float64 {
	if m.ServiceLife <= 0 || designLife <= 0 {
		return 0
	}
	return math.Max(0, math.Floor(designLife/m.ServiceLife))
}
