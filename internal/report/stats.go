package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
)

// WriteStats renders coefficient distributions per category and
// functional unit, one block per flow.
func WriteStats(w io.Writer, groups []epicdb.GroupStats) error {
	for _, flow := range epic.DefinedFlows {
		fmt.Fprintf(w, "%s (%s per functional unit)\n", flow.Label(), flow.Unit())
		fmt.Fprintln(w, lightRule)

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprint(tw, "  Category\tUnit\tCount\tMean\tStdDev\tMin\tMedian\tMax\n")
		for _, group := range groups {
			summary := statsSummary(group, flow)
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t%.1f\n",
				group.Category, group.FunctionalUnit, group.Count,
				summary.Mean, summary.StdDev, summary.Min, summary.Median, summary.Max)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}

// WriteStatsJSON renders the raw group summaries.
func WriteStatsJSON(w io.Writer, groups []epicdb.GroupStats) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(groups)
}

func statsSummary(group epicdb.GroupStats, flow epic.Flow) epicdb.Summary {
	switch flow {
	case epic.Water:
		return group.Water
	case epic.GHG:
		return group.GHG
	default:
		return group.Energy
	}
}
