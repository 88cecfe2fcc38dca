package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/Adhavansuren/EPiC-Grasshopper/internal/report"
)

func newCategoriesCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the material categories of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			type category struct {
				Name      string `json:"name"`
				Materials int    `json:"materials"`
			}

			names := app.DB.Categories()
			categories := make([]category, 0, len(names))
			for _, name := range names {
				materials, err := app.DB.Materials(name)
				if err != nil {
					return err
				}
				categories = append(categories, category{Name: name, Materials: len(materials)})
			}

			switch f, err := report.ParseFormat(format); {
			case err != nil:
				return err
			case f == report.JSON:
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(categories)
			case f == report.CSV:
				return fmt.Errorf("categories render as text or json")
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CATEGORY\tMATERIALS")
			for _, c := range categories {
				fmt.Fprintf(tw, "%s\t%d\n", c.Name, c.Materials)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")

	return cmd
}

func newMaterialsCmd(app *App) *cobra.Command {
	var category string
	var limit int
	var format string

	cmd := &cobra.Command{
		Use:   "materials [query]",
		Short: "List database materials, or fuzzy search them by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			materials := app.DB.All()
			switch {
			case len(args) == 1:
				materials = app.DB.Search(args[0], limit)
			case category != "":
				if materials, err = app.DB.Materials(category); err != nil {
					return err
				}
			}
			if limit > 0 && limit < len(materials) {
				materials = materials[:limit]
			}

			return writeMaterials(cmd.OutOrStdout(), materials, f)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "restrict the listing to one category")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of rows, 0 lists everything")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, csv, json)")

	return cmd
}

func newMaterialCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "material ID",
		Short: "Show the full detail sheet of one material",
		Long: `Show the coefficients, process shares and estimation defaults of one
material. The ID may be a database id, a previous edition id or a
material name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			material, err := app.DB.Material(args[0])
			if err != nil {
				return err
			}
			return report.WriteMaterialSheet(cmd.OutOrStdout(), material)
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarise coefficient distributions per category and unit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := app.DB.Stats()

			switch f, err := report.ParseFormat(format); {
			case err != nil:
				return err
			case f == report.JSON:
				return report.WriteStatsJSON(cmd.OutOrStdout(), groups)
			case f == report.CSV:
				return fmt.Errorf("stats render as text or json")
			}
			return report.WriteStats(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")

	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the bundled database for spreadsheets or scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			return withOutput(cmd, output, func(w io.Writer) error {
				return writeMaterials(w, app.DB.All(), f)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "output format (text, csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to a file instead of stdout")

	return cmd
}
