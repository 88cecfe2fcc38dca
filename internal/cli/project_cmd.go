package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/design"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/report"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/store"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage stored estimation projects",
		Long: `Projects persist assemblies in a local SQLite database so a take-off
can grow over several sessions before reporting.`,
	}

	cmd.AddCommand(
		newProjectCreateCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectAddCmd(app),
		newProjectRemoveCmd(app),
		newProjectDeleteCmd(app),
		newProjectReportCmd(app),
	)

	return cmd
}

func openStore(app *App) (*store.Store, error) {
	return store.Open(app.Config.StorePath)
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var comments string
	var designLife float64

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new empty project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			var designLifePtr *float64
			if cmd.Flags().Changed("design-life") {
				if designLife < 0 {
					return fmt.Errorf("design life cannot be negative, got %v", designLife)
				}
				designLifePtr = &designLife
			}

			project, err := st.CreateProject(cmd.Context(), args[0], comments, designLifePtr)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q\n", project.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&comments, "comments", "", "free form project notes")
	cmd.Flags().Float64Var(&designLife, "design-life", epic.DefaultDesignLife, "design life in years, overrides the configured default")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			projects, err := st.ListProjects(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), `No projects yet, create one with "epic project create".`)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tASSEMBLIES\tDESIGN LIFE\tCREATED")
			for _, project := range projects {
				assemblies, err := st.Assemblies(cmd.Context(), project.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n",
					project.Name,
					len(assemblies),
					designLifeLabel(project.DesignLife),
					project.CreatedAt.Format("2006-01-02"),
				)
			}
			return tw.Flush()
		},
	}
}

func designLifeLabel(years *float64) string {
	if years == nil {
		return "default"
	}
	return fmt.Sprintf("%v years", *years)
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a project and its assemblies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			project, err := st.Project(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			assemblies, err := st.Assemblies(cmd.Context(), project.Name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "  Name:\t%s\n", project.Name)
			if project.Comments != "" {
				fmt.Fprintf(tw, "  Comments:\t%s\n", project.Comments)
			}
			fmt.Fprintf(tw, "  Design life:\t%s\n", designLifeLabel(project.DesignLife))
			fmt.Fprintf(tw, "  Created:\t%s\n", project.CreatedAt.Format("2006-01-02 15:04"))
			fmt.Fprintf(tw, "  Updated:\t%s\n", project.UpdatedAt.Format("2006-01-02 15:04"))
			if err := tw.Flush(); err != nil {
				return err
			}

			if len(assemblies) == 0 {
				fmt.Fprintln(out)
				fmt.Fprintln(out, `No assemblies yet, add some with "epic project add".`)
				return nil
			}

			fmt.Fprintln(out)
			tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ASSEMBLY\tCATEGORY\tUNITS\tQUANTITY\tMATERIALS")
			for _, assembly := range assemblies {
				total := 0.0
				for _, quantity := range assembly.Quantities {
					total += quantity
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%d\n",
					assembly.Name, assembly.Category, assembly.Units, total, len(assembly.Materials))
			}
			return tw.Flush()
		},
	}
}

func newProjectAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME FILE",
		Short: "Add the assemblies of a design document to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			document, err := design.ParseFile(args[1])
			if err != nil {
				return err
			}
			// Unknown material references fail here, before anything
			// lands in the store.
			if _, err := document.Resolve(app.DB); err != nil {
				return err
			}

			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			for _, assembly := range document.Assemblies {
				if err := st.AddAssembly(cmd.Context(), args[0], assembly); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %d assemblies to %q\n", len(document.Assemblies), args[0])
			return nil
		},
	}
}

func newProjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME ASSEMBLY",
		Short: "Remove one assembly from a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.RemoveAssembly(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed assembly %q from %q\n", args[1], args[0])
			return nil
		},
	}
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a project and all its assemblies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.DeleteProject(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %q\n", args[0])
			return nil
		},
	}
}

func newProjectReportCmd(app *App) *cobra.Command {
	var designLife float64
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "report NAME",
		Short: "Estimate a stored project and render the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			st, err := openStore(app)
			if err != nil {
				return err
			}
			defer st.Close()

			document, err := st.Document(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := document.Validate(); err != nil {
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

	cmd.Flags().Float64Var(&designLife, "design-life", epic.DefaultDesignLife, "design life in years, overrides the project")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, csv, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}
