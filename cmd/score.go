package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/scoring"
)

// Score command flags.
var scorePlacementID string

// NewScoreCommand creates the score command.
func NewScoreCommand(deps *IngestCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultIngestDeps()
	}

	cmd := &cobra.Command{
		Use:   "score <file>",
		Short: "Show priority score breakdowns for a placement export",
		Long: `Show priority score breakdowns for a placement export.

Each placement gets a 0-100 score from six weighted factors: premium at
risk, time to expiry, incumbent status, carrier responsiveness, client
segment, and commission value. Use --id to inspect a single placement.

Examples:
  renew score export.csv
  renew score export.csv --id PLC-2024-001
  renew score export.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), deps, args[0])
		},
	}

	cmd.Flags().StringVar(&scorePlacementID, "id", "", "Show only the placement with this ID")

	return cmd
}

func runScore(ctx context.Context, deps *IngestCommandDeps, path string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(cfg)
	if err != nil {
		return err
	}

	csvText, err := readInputFile(path)
	if err != nil {
		return err
	}

	records := deps.NewParser(newLogger(cfg)).Placements(ctx, csvText)

	if scorePlacementID != "" {
		records = filterByPlacementID(records, scorePlacementID)
		if len(records) == 0 {
			return fmt.Errorf("placement %q not found in %s", scorePlacementID, path)
		}
	}

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, records)
	}

	for _, rec := range records {
		printScoreBreakdown(rec)
	}
	return nil
}

func filterByPlacementID(records []*placement.Record, id string) []*placement.Record {
	var matched []*placement.Record
	for _, rec := range records {
		if strings.EqualFold(rec.PlacementID, id) {
			matched = append(matched, rec)
		}
	}
	return matched
}

func printScoreBreakdown(rec *placement.Record) {
	name := rec.PlacementID
	if name == "" {
		name = rec.PlacementName
	}
	fmt.Printf("%s  (%s)\n", name, rec.Client)
	fmt.Printf("Priority score: %d/100  urgency: %s\n", rec.PriorityScore, scoring.Urgency(rec.DaysUntilExpiry))

	if rec.ScoreBreakdown == nil {
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FACTOR\tSCORE\tIMPACT\tDETAIL")
	for _, f := range rec.ScoreBreakdown.Factors {
		fmt.Fprintf(w, "%s\t%d/%d\t%s\t%s\n", f.Name, f.Score, f.MaxScore, f.Impact, f.Description)
	}
	w.Flush()

	if rec.HasMultipleQuotes {
		fmt.Printf("Competing quotes: %d carriers\n", len(rec.CarrierVariants))
	}
	fmt.Println()
}
