package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"floorplan/internal/floorplan/capture"
	"floorplan/internal/floorplan/codec"
	"floorplan/internal/floorplan/editor"
	"floorplan/internal/floorplan/export"
	"floorplan/internal/floorplan/models"
)

var (
	convertIn      string
	convertName    string
	convertProject string
	convertOut     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Turn a room capture snapshot into a plan room",
	Long: `Convert a captured room snapshot (meters) into a room in feet.

The room is placed to the right of the rooms already in --project, or
starts a new plan when no project is given. The resulting plan is
written to --out, to --project when --out is empty, or to stdout.

Examples:
  floorplanctl convert --in scan.json --name Kitchen
  floorplanctl convert --in scan.json --name Bedroom --project plan.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(convertIn)
		if err != nil {
			return err
		}
		var snap capture.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return fmt.Errorf("%s: invalid snapshot: %w", convertIn, err)
		}

		p := *models.NewProject("Scanned Plan")
		if convertProject != "" {
			if p, err = readProject(convertProject); err != nil {
				return err
			}
		}

		s, err := editor.NewSession(p, export.Options{})
		if err != nil {
			return err
		}
		room, err := s.ApplyScan(capture.Convert(snap, convertName))
		if err != nil {
			return err
		}

		out, err := codec.EncodeJSON(s.Project())
		if err != nil {
			return err
		}

		target := convertOut
		if target == "" {
			target = convertProject
		}
		if target == "" {
			target = "-"
		}
		if err := writeOutput(cmd, target, out); err != nil {
			return err
		}
		if target != "-" {
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %s' x %s' x %s' at (%s, %s) to %s\n",
				room.Name, ftoa(room.Width), ftoa(room.Length), ftoa(room.Height), ftoa(room.X), ftoa(room.Z), target)
		}
		return nil
	},
}

func init() {
	convertCmd.Flags().StringVar(&convertIn, "in", "", "capture snapshot JSON file")
	convertCmd.Flags().StringVar(&convertName, "name", "Room", "name of the new room")
	convertCmd.Flags().StringVar(&convertProject, "project", "", "plan JSON file to add the room to")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output plan file")
	convertCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(convertCmd)
}
