package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/design"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/report"
)

func newEstimateCmd(app *App) *cobra.Command {
	var designLife float64
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "estimate FILE",
		Short: "Estimate the embodied flows of a design document",
		Long: `Estimate the life cycle embodied energy, water and greenhouse gas
flows of the built asset described by a YAML or JSON design document.
"epic init" writes a starter document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			document, err := design.ParseFile(args[0])
			if err != nil {
				return err
			}

			asset, err := document.Resolve(app.DB)
			if err != nil {
				return err
			}

			years, err := designLifeYears(cmd, app, document, designLife)
			if err != nil {
				return err
			}

			estimate, err := asset.EstimateConcurrently(cmd.Context(), years)
			if err != nil {
				return err
			}

			return withOutput(cmd, output, func(w io.Writer) error {
				return report.WriteAsset(w, estimate, f)
			})
		},
	}

	cmd.Flags().Float64Var(&designLife, "design-life", epic.DefaultDesignLife, "design life in years, overrides the document")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}

// designLifeYears picks the estimation span: the flag when set, then the
// document, then the configured default.
func designLifeYears(cmd *cobra.Command, app *App, document *design.Document, flagValue float64) (float64, error) {
	if cmd.Flags().Changed("design-life") {
		if flagValue < 0 {
			return 0, fmt.Errorf("design life cannot be negative, got %v", flagValue)
		}
		return flagValue, nil
	}
	if document.DesignLife != nil {
		return document.DesignLifeYears(), nil
	}
	return app.Config.DesignLife, nil
}
