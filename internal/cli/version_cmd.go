package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/epicdb"
)

func newVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the toolkit and database versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "epic %s\n", epic.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "EPiC database %s (doi:%s), %d materials\n",
				epicdb.Version, epicdb.DOI, app.DB.Len())
			return nil
		},
	}
}
