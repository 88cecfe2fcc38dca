// Package epic estimates the embodied environmental flows of construction
// materials, assemblies and whole built assets using coefficients from the
// EPiC database of hybrid life cycle inventories.
//
// Three flows are tracked: embodied energy (MJ), embodied water (L) and
// embodied greenhouse-gas emissions (kgCO₂e). Every estimate splits each
// flow into an initial share, covering installation and material wastage,
// and a recurring share, covering replacements over the design life of the
// asset.
package epic

// Version is the toolkit release.
const Version = "1.2.0"

// Disclaimer accompanies every generated report. Coefficients are hybrid
// life cycle inventory figures and inherit the uncertainty of their source
// data.
const Disclaimer = "Results are estimates derived from the EPiC database of embodied " +
	"environmental flow coefficients. Estimates depend on the quality of user " +
	"inputs and carry the uncertainty inherent in any life cycle inventory. " +
	"The authors accept no responsibility for decisions made on the basis of " +
	"these results."
