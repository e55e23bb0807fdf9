package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest"
)

// NewSampleCommand creates the sample command.
func NewSampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print sample CSV templates",
		Long: `Print sample CSV templates matching the expected export formats.

Useful for checking column layout or piping straight back into ingest:
  renew sample placements | renew ingest placements -`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "placements",
		Short: "Print a sample placement export",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(ingest.SamplePlacementCSV())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "emails",
		Short: "Print a sample email connector export",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(ingest.SampleEmailCSV())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "calendar",
		Short: "Print a sample calendar connector export",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(ingest.SampleCalendarCSV())
		},
	})

	return cmd
}
