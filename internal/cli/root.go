// Package cli wires the epic command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/config"
)

// App holds the configuration and the loaded material database shared by
// all commands. Both are set by the root command before any subcommand
// runs.
type App struct {
	Config config.Config
	DB     *epicdb.DB
}

// NewRootCmd creates the top-level "epic" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath, logLevel, logFormat string

	root := &cobra.Command{
		Use:     "epic",
		Short:   "Estimate embodied energy, water and greenhouse gas flows of building designs",
		Version: epic.Version,
		Long: `epic estimates the embodied environmental flows of construction
materials, assemblies and whole built assets over their design life,
using the coefficients of the bundled EPiC database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}
			initLogging(cfg.Log.Level, cfg.Log.Format)

			db, err := epicdb.Load()
			if err != nil {
				return fmt.Errorf("loading material database: %w", err)
			}

			app.Config = cfg
			app.DB = db
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default epic.yaml when present)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log severity (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json)")

	root.AddCommand(
		newCategoriesCmd(app),
		newMaterialsCmd(app),
		newMaterialCmd(app),
		newStatsCmd(app),
		newExportCmd(app),
		newEstimateCmd(app),
		newInitCmd(app),
		newProjectCmd(app),
		newServeCmd(app),
		newVersionCmd(app),
	)

	return root
}
