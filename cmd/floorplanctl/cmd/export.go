package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"floorplan/internal/floorplan/export"
)

var (
	exportIn         string
	exportFormat     string
	exportOut        string
	exportScale      float64
	exportDimensions bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a plan file to another format",
	Long: `Export a floor plan JSON file.

The output file is named after the project unless --out is given.
Use --out - to write to stdout.

Examples:
  floorplanctl export --in plan.json --format pdf
  floorplanctl export --in plan.json --format png --scale 3 --out plan@3x.png
  floorplanctl export --in plan.json --format dxf --dimensions`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		p, err := readProject(exportIn)
		if err != nil {
			return err
		}

		data, err := export.Encode(f, p, export.Options{
			RasterScale:   exportScale,
			GeneratedAt:   time.Now().UTC(),
			DXFDimensions: exportDimensions,
		})
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = export.FileName(p.Name, f)
		}
		if err := writeOutput(cmd, out, data); err != nil {
			return err
		}
		if out != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(data))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportIn, "in", "", "plan JSON file")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", string(export.FormatPDF), "json, pdf, png, dxf, svg or xlsx")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
	exportCmd.Flags().Float64Var(&exportScale, "scale", export.DefaultRasterScale, "PNG device scale")
	exportCmd.Flags().BoolVar(&exportDimensions, "dimensions", false, "add room size text to DXF output")
	exportCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(exportCmd)
}
