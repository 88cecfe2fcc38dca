package epic

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"
)

// Flow identifies one of the embodied environmental flows tracked by the
// EPiC database.
type Flow int

const (
	// Energy is embodied energy, expressed in megajoules.
	Energy Flow = iota
	// Water is embodied water, expressed in litres.
	Water
	// GHG is embodied greenhouse-gas emissions, expressed in kilograms of
	// carbon dioxide equivalent.
	GHG
)

// DefinedFlows lists every tracked flow in reporting order.
var DefinedFlows = []Flow{Energy, Water, GHG}

func (f Flow) String() string {
	switch f {
	case Energy:
		return "energy"
	case Water:
		return "water"
	case GHG:
		return "ghg"
	default:
		return "unknown"
	}
}

// Label returns the long flow name used in report headings.
func (f Flow) Label() string {
	switch f {
	case Energy:
		return "Embodied Energy"
	case Water:
		return "Embodied Water"
	case GHG:
		return "Embodied GHG"
	default:
		return "Unknown"
	}
}

// Unit returns the measurement unit the flow is expressed in.
func (f Flow) Unit() string {
	switch f {
	case Energy:
		return "MJ"
	case Water:
		return "L"
	case GHG:
		return "kgCO₂e"
	default:
		return ""
	}
}

// Flows holds one value for each defined flow. Values are unit-agnostic:
// the same struct carries coefficients per functional unit, estimated
// totals, process-data proportions and reduction percentages.
type Flows struct {
	Energy float64
	Water  float64
	GHG    float64
}

// Get returns the value held for the given flow.
func (f Flows) Get(flow Flow) float64 {
	switch flow {
	case Energy:
		return f.Energy
	case Water:
		return f.Water
	case GHG:
		return f.GHG
	default:
		return 0
	}
}

// Add returns the flow-wise sum of f and other.
func (f Flows) Add(other Flows) Flows {
	return Flows{
		Energy: f.Energy + other.Energy,
		Water:  f.Water + other.Water,
		GHG:    f.GHG + other.GHG,
	}
}

// Scale returns f with every flow multiplied by factor.
func (f Flows) Scale(factor float64) Flows {
	return Flows{
		Energy: f.Energy * factor,
		Water:  f.Water * factor,
		GHG:    f.GHG * factor,
	}
}

// Complete reports whether every flow holds a usable number.
func (f Flows) Complete() bool {
	for _, flow := range DefinedFlows {
		v := f.Get(flow)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// IsZero reports whether every flow is exactly zero.
func (f Flows) IsZero() bool {
	return f == Flows{}
}

func (f Flows) String() string {
	return fmt.Sprintf("%.1f MJ, %.1f L, %.1f kgCO₂e", f.Energy, f.Water, f.GHG)
}

// flowsJSON is the wire form of Flows. Missing coefficients are held as
// NaN in memory and travel as null.
type flowsJSON struct {
	Energy *float64 `json:"energy"`
	Water  *float64 `json:"water"`
	GHG    *float64 `json:"ghg"`
}

func (f Flows) MarshalJSON() ([]byte, error) {
	return json.Marshal(flowsJSON{
		Energy: jsonNumber(f.Energy),
		Water:  jsonNumber(f.Water),
		GHG:    jsonNumber(f.GHG),
	})
}

func (f *Flows) UnmarshalJSON(data []byte) error {
	var raw flowsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.Energy = jsonValue(raw.Energy)
	f.Water = jsonValue(raw.Water)
	f.GHG = jsonValue(raw.GHG)
	return nil
}

func jsonNumber(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func jsonValue(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// LifeCycle splits estimated flows between the initial installation and
// the recurring replacements over a design life.
type LifeCycle struct {
	Initial   Flows `json:"initial"`
	Recurring Flows `json:"recurring"`
}

// Total returns initial plus recurring flows.
func (lc LifeCycle) Total() Flows {
	return lc.Initial.Add(lc.Recurring)
}

// Add returns the flow-wise sum of lc and other.
func (lc LifeCycle) Add(other LifeCycle) LifeCycle {
	return LifeCycle{
		Initial:   lc.Initial.Add(other.Initial),
		Recurring: lc.Recurring.Add(other.Recurring),
	}
}

// Unit is the measurement vocabulary shared by material functional units
// and assembly quantities.
type Unit string

const (
	Kilogram    Unit = "kg"
	SquareMetre Unit = "m²"
	CubicMetre  Unit = "m³"
	Metre       Unit = "m"
	Item        Unit = "no."
)

// KnownUnits lists every unit a material or assembly can be measured in.
var KnownUnits = []Unit{Kilogram, SquareMetre, CubicMetre, Metre, Item}

// ParseUnit maps a unit spelling to its canonical form. ASCII fallbacks
// are accepted for the superscript units ("m2", "m3") and for items
// ("no", "item", "each").
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "kg":
		return Kilogram, nil
	case "m²", "m2":
		return SquareMetre, nil
	case "m³", "m3":
		return CubicMetre, nil
	case "m":
		return Metre, nil
	case "no.", "no", "item", "each":
		return Item, nil
	}
	return "", fmt.Errorf("unknown unit %q", s)
}
