package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/models"
	"floorplan/internal/floorplan/storage"
)

var rootCmd = &cobra.Command{
	Use:   "floorplanctl",
	Short: "Convert, inspect and export floor plans",
	Long: `floorplanctl works on floor plan JSON files offline.

It exports a plan to PDF, PNG, DXF, SVG, XLSX or canonical JSON, converts
a room capture snapshot into a placed room, and prints plan summaries.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// readProject loads and decodes a plan file.
func readProject(path string) (models.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Project{}, err
	}
	p, err := codec.DecodeJSON(data)
	if err != nil {
		return models.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	return storage.SaveFile(path, data)
}
