package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var infoIn string

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print a summary of a plan file",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := readProject(infoIn)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
		fmt.Fprintf(out, "Modified: %s\n\n", p.DateModified.Format("2006-01-02 15:04:05 MST"))

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ROOM\tSIZE\tHEIGHT\tAREA\tPOSITION")
		for _, r := range p.Rooms {
			fmt.Fprintf(tw, "%s\t%s' x %s'\t%s'\t%s sq ft\t(%s, %s)\n",
				r.Name, ftoa(r.Width), ftoa(r.Length), ftoa(r.Height), ftoa(r.Area()), ftoa(r.X), ftoa(r.Z))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintf(out, "\n%d rooms, %d doors, %d windows\n", len(p.Rooms), len(p.Doors), len(p.Windows))
		fmt.Fprintf(out, "Total Area: %s sq ft\n", ftoa(p.TotalArea()))
		if maxX, maxZ, ok := p.Extent(); ok {
			fmt.Fprintf(out, "Extent: %s' x %s'\n", ftoa(maxX), ftoa(maxZ))
		}
		return nil
	},
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func init() {
	infoCmd.Flags().StringVar(&infoIn, "in", "", "plan JSON file")
	infoCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(infoCmd)
}
