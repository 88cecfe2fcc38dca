package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
)

// WriteMaterialsTable renders one line per material with its coefficients
// per functional unit.
func WriteMaterialsTable(w io.Writer, materials []epic.Material) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "ID\tName\tCategory\tUnit\tEnergy (MJ)\tWater (L)\tGHG (kgCO₂e)\n")
	for _, material := range materials {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			material.ID,
			material.Name,
			material.Category,
			material.FunctionalUnit,
			formatCoefficient(material.Coefficients.Energy),
			formatCoefficient(material.Coefficients.Water),
			formatCoefficient(material.Coefficients.GHG),
		)
	}
	return tw.Flush()
}

// WriteMaterialSheet renders the full information sheet of one material.
func WriteMaterialSheet(w io.Writer, material epic.Material) error {
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "     %s\n", material.Name)
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  ID:\t%s\n", material.ID)
	if material.OldID != "" {
		fmt.Fprintf(tw, "  Former ID:\t%s\n", material.OldID)
	}
	fmt.Fprintf(tw, "  Category:\t%s\n", material.Category)
	fmt.Fprintf(tw, "  Functional unit:\t%s\n", material.FunctionalUnit)
	if material.Density > 0 {
		fmt.Fprintf(tw, "  Density:\t%s kg/m³\n", formatQuantity(material.Density))
	}
	fmt.Fprintf(tw, "  Default wastage:\t%.1f%%\n", material.Wastage)
	if material.ServiceLife > 0 {
		fmt.Fprintf(tw, "  Service life:\t%s years\n", formatQuantity(material.ServiceLife))
	} else {
		fmt.Fprint(tw, "  Service life:\tnot replaced\n")
	}
	if material.DOI != "" {
		fmt.Fprintf(tw, "  Information sheet:\thttps://doi.org/%s\n", material.DOI)
	}
	tw.Flush()
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Flow\tCoefficient (per %s)\tProcess share\n", material.FunctionalUnit)
	for _, flow := range epic.DefinedFlows {
		fmt.Fprintf(tw, "  %s (%s)\t%s\t%.0f%%\n",
			flow.Label(), flow.Unit(),
			formatCoefficient(material.Coefficients.Get(flow)),
			material.ProcessShares.Get(flow)*100,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if material.Incomplete() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  ⚠ estimation skips this material, coefficients are incomplete")
	}

	return nil
}

// WriteMaterialsCSV exports materials with the bundled database column
// layout, percentages and years instead of raw conventions.
func WriteMaterialsCSV(w io.Writer, materials []epic.Material) error {
	writer := csv.NewWriter(w)

	header := []string{
		"id", "old_id", "name", "category", "functional_unit",
		"energy_mj", "water_l", "ghg_kgco2e",
		"density_kg_m3", "wastage_pct", "service_life_years",
		"share_energy", "share_water", "share_ghg", "doi",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, material := range materials {
		writer.Write([]string{
			material.ID,
			material.OldID,
			material.Name,
			material.Category,
			string(material.FunctionalUnit),
			csvCoefficient(material.Coefficients.Energy),
			csvCoefficient(material.Coefficients.Water),
			csvCoefficient(material.Coefficients.GHG),
			formatQuantity(material.Density),
			formatQuantity(material.Wastage),
			formatQuantity(material.ServiceLife),
			formatQuantity(material.ProcessShares.Energy),
			formatQuantity(material.ProcessShares.Water),
			formatQuantity(material.ProcessShares.GHG),
			material.DOI,
		})
	}

	writer.Flush()
	return writer.Error()
}

// WriteMaterialsJSON exports materials as a JSON array. Missing
// coefficients export as null.
func WriteMaterialsJSON(w io.Writer, materials []epic.Material) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(materials)
}

func formatCoefficient(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", v)
}

func csvCoefficient(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return formatQuantity(v)
}
