package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
)

const (
	heavyRule = "═══════════════════════════════════════════════════════════════════════"
	lightRule = "───────────────────────────────────────────────────────────────────────"
)

// WriteAsset renders an asset estimate in the given format.
func WriteAsset(w io.Writer, estimate *epic.AssetEstimate, format Format) error {
	switch format {
	case Text:
		return WriteAssetText(w, estimate)
	case CSV:
		return WriteAssetCSV(w, estimate)
	case JSON:
		return WriteAssetJSON(w, estimate)
	}
	return fmt.Errorf("unknown report format %q", format)
}

// WriteAssetText renders a human readable asset report: one section per
// assembly, category totals and asset totals, closed by the disclaimer.
func WriteAssetText(w io.Writer, estimate *epic.AssetEstimate) error {
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "     EPiC EMBODIED FLOWS REPORT")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "ASSET:")
	fmt.Fprintln(w, lightRule)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Name:\t%s\n", estimate.Name)
	if estimate.Comments != "" {
		fmt.Fprintf(tw, "  Comments:\t%s\n", estimate.Comments)
	}
	fmt.Fprintf(tw, "  Design life:\t%s years\n", formatQuantity(estimate.DesignLife))
	fmt.Fprintf(tw, "  Database:\tEPiC %s (doi:%s)\n", epicdb.Version, epicdb.DOI)
	tw.Flush()
	fmt.Fprintln(w)

	for _, assembly := range estimate.Assemblies {
		if err := writeAssemblyText(w, assembly); err != nil {
			return err
		}
	}

	if len(estimate.Categories) > 1 {
		fmt.Fprintln(w, "CATEGORY TOTALS (life cycle):")
		fmt.Fprintln(w, lightRule)
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "  Category\tEnergy (MJ)\tWater (L)\tGHG (kgCO₂e)\n")
		for _, category := range sortedCategories(estimate.Categories) {
			flows := estimate.Categories[category]
			fmt.Fprintf(tw, "  %s\t%.1f\t%.1f\t%.1f\n", category, flows.Energy, flows.Water, flows.GHG)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "ASSET TOTALS:")
	fmt.Fprintln(w, lightRule)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	writeLifeCycleRows(tw, estimate.Flows)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, wrap(epic.Disclaimer, 71))
	return nil
}

func writeAssemblyText(w io.Writer, estimate *epic.Estimate) error {
	if estimate.Category != estimate.Name {
		fmt.Fprintf(w, "ASSEMBLY: %s (%s)\n", estimate.Name, estimate.Category)
	} else {
		fmt.Fprintf(w, "ASSEMBLY: %s\n", estimate.Name)
	}
	fmt.Fprintln(w, lightRule)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Quantity:\t%s %s\n", formatQuantity(estimate.TotalQuantity), estimate.Units)
	if estimate.Comments != "" {
		fmt.Fprintf(tw, "  Comments:\t%s\n", estimate.Comments)
	}
	tw.Flush()
	fmt.Fprintln(w)

	if len(estimate.Materials) > 0 {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "  Material\tQuantity\tWastage\tRepl\tEnergy (MJ)\tWater (L)\tGHG (kgCO₂e)\n")
		for _, material := range estimate.Materials {
			fmt.Fprintf(tw, "  %s\t%s %s\t%.0f%%\t%.0f\t%.1f\t%.1f\t%.1f\n",
				material.MaterialName,
				formatQuantity(material.Quantity), material.FunctionalUnit,
				material.Wastage,
				material.Replacements,
				material.Flows.Initial.Energy,
				material.Flows.Initial.Water,
				material.Flows.Initial.GHG,
			)
		}
		fmt.Fprint(tw, "  \t\t\t\t\t\t\n")
		writeLifeCycleRows(tw, estimate.Flows)
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	for _, name := range estimate.Skipped {
		fmt.Fprintf(w, "  ⚠ skipped %s: no usable coefficients\n", name)
	}

	fmt.Fprintln(w)
	return nil
}

func writeLifeCycleRows(tw *tabwriter.Writer, flows epic.LifeCycle) {
	total := flows.Total()
	fmt.Fprintf(tw, "  Initial\t\t\t\t%.1f\t%.1f\t%.1f\n",
		flows.Initial.Energy, flows.Initial.Water, flows.Initial.GHG)
	fmt.Fprintf(tw, "  Recurring\t\t\t\t%.1f\t%.1f\t%.1f\n",
		flows.Recurring.Energy, flows.Recurring.Water, flows.Recurring.GHG)
	fmt.Fprintf(tw, "  Life cycle\t\t\t\t%.1f\t%.1f\t%.1f\n",
		total.Energy, total.Water, total.GHG)
}

// WriteAssetCSV renders one row per material estimate, one total row per
// assembly and one for the whole asset, flagged by the row column.
func WriteAssetCSV(w io.Writer, estimate *epic.AssetEstimate) error {
	writer := csv.NewWriter(w)

	header := []string{
		"row", "asset", "assembly", "category",
		"material_id", "material", "functional_unit",
		"quantity", "wastage_pct", "service_life", "replacements",
		"initial_energy_mj", "initial_water_l", "initial_ghg_kgco2e",
		"recurring_energy_mj", "recurring_water_l", "recurring_ghg_kgco2e",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, assembly := range estimate.Assemblies {
		for _, material := range assembly.Materials {
			writer.Write([]string{
				"material", estimate.Name, assembly.Name, assembly.Category,
				material.MaterialID, material.MaterialName, string(material.FunctionalUnit),
				formatNumber(material.Quantity),
				formatNumber(material.Wastage),
				formatNumber(material.ServiceLife),
				formatNumber(material.Replacements),
				formatNumber(material.Flows.Initial.Energy),
				formatNumber(material.Flows.Initial.Water),
				formatNumber(material.Flows.Initial.GHG),
				formatNumber(material.Flows.Recurring.Energy),
				formatNumber(material.Flows.Recurring.Water),
				formatNumber(material.Flows.Recurring.GHG),
			})
		}
		writer.Write([]string{
			"assembly_total", estimate.Name, assembly.Name, assembly.Category,
			"", "", string(assembly.Units),
			formatNumber(assembly.TotalQuantity), "", "", "",
			formatNumber(assembly.Flows.Initial.Energy),
			formatNumber(assembly.Flows.Initial.Water),
			formatNumber(assembly.Flows.Initial.GHG),
			formatNumber(assembly.Flows.Recurring.Energy),
			formatNumber(assembly.Flows.Recurring.Water),
			formatNumber(assembly.Flows.Recurring.GHG),
		})
	}

	writer.Write([]string{
		"asset_total", estimate.Name, "", "",
		"", "", "",
		"", "", "", "",
		formatNumber(estimate.Flows.Initial.Energy),
		formatNumber(estimate.Flows.Initial.Water),
		formatNumber(estimate.Flows.Initial.GHG),
		formatNumber(estimate.Flows.Recurring.Energy),
		formatNumber(estimate.Flows.Recurring.Water),
		formatNumber(estimate.Flows.Recurring.GHG),
	})

	writer.Flush()
	return writer.Error()
}

// WriteAssetJSON renders the full estimate tree.
func WriteAssetJSON(w io.Writer, estimate *epic.AssetEstimate) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(estimate)
}

func sortedCategories(categories map[string]epic.Flows) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// wrap folds text at word boundaries to the given width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var builder strings.Builder
	lineLength := 0
	for i, word := range words {
		if i > 0 {
			if lineLength+1+len(word) > width {
				builder.WriteByte('\n')
				lineLength = 0
			} else {
				builder.WriteByte(' ')
				lineLength++
			}
		}
		builder.WriteString(word)
		lineLength += len(word)
	}
	return builder.String()
}
