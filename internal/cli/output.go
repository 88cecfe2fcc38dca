package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	epic "github.com/Adhavansuren/EPiC-Grasshopper"
	"github.com/Adhavansuren/EPiC-Grasshopper/internal/report"
)

// withOutput runs write against the file at path, or against the command
// stdout when path is empty.
func withOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func writeMaterials(w io.Writer, materials []epic.Material, format report.Format) error {
	switch format {
	case report.CSV:
		return report.WriteMaterialsCSV(w, materials)
	case report.JSON:
		return report.WriteMaterialsJSON(w, materials)
	default:
		return report.WriteMaterialsTable(w, materials)
	}
}
