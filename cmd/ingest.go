package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/ingest"
	"github.com/SafeGiantJacket/renewaldesk/pkg/logging"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
	"github.com/SafeGiantJacket/renewaldesk/pkg/scoring"
)

// IngestCommandDeps holds the dependencies for ingest commands.
type IngestCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	NewParser  func(log logging.Logger) *ingest.Parser
}

// DefaultIngestDeps returns the default dependencies for production use.
func DefaultIngestDeps() *IngestCommandDeps {
	return &IngestCommandDeps{
		LoadConfig: config.LoadConfig,
		NewParser: func(log logging.Logger) *ingest.Parser {
			return ingest.NewParser(log)
		},
	}
}

// NewIngestCommand creates the ingest command and its subcommands.
func NewIngestCommand(deps *IngestCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultIngestDeps()
	}

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Parse CSV exports into scored records",
		Long: `Parse CSV exports into records.

Placement exports are deduplicated by placement ID and scored for renewal
urgency. Email and calendar exports come from the connector pipeline and
feed the insights command.`,
	}

	cmd.AddCommand(newIngestPlacementsCommand(deps))
	cmd.AddCommand(newIngestEmailsCommand(deps))
	cmd.AddCommand(newIngestCalendarCommand(deps))

	return cmd
}

func newIngestPlacementsCommand(deps *IngestCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "placements <file>",
		Short: "Ingest a placement CSV export",
		Long: `Ingest a placement CSV export.

Rows are parsed with quote-aware field splitting, deduplicated by placement
ID (the best quote wins), and each surviving record gets a 0-100 priority
score. Use "-" to read from stdin.

Examples:
  renew ingest placements export.csv
  renew ingest placements export.csv -o json
  cat export.csv | renew ingest placements -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestPlacements(cmd.Context(), deps, args[0])
		},
	}
}

func newIngestEmailsCommand(deps *IngestCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "emails <file>",
		Short: "Ingest an email connector CSV export",
		Long: `Ingest an email connector CSV export.

Headers are matched fuzzily, so "Email Subject" and "subject" both work.
Rows without a subject or client name are dropped.

Examples:
  renew ingest emails emails.csv
  renew ingest emails emails.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestEmails(deps, args[0])
		},
	}
}

func newIngestCalendarCommand(deps *IngestCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar <file>",
		Short: "Ingest a calendar connector CSV export",
		Long: `Ingest a calendar connector CSV export.

Headers are matched fuzzily. Participant lists use ";" as the separator
inside a single column. Rows without a title or client name are dropped.

Examples:
  renew ingest calendar meetings.csv
  renew ingest calendar meetings.csv -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngestCalendar(deps, args[0])
		},
	}
}

func runIngestPlacements(ctx context.Context, deps *IngestCommandDeps, path string) error {
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

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, records)
	}
	printPlacementTable(records)
	return nil
}

func runIngestEmails(deps *IngestCommandDeps, path string) error {
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

	emails := deps.NewParser(newLogger(cfg)).Emails(csvText)

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, emails)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tSUBJECT\tSENTIMENT\tTHREAD")
	for _, e := range emails {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			e.EmailID, e.ClientName, e.Subject, e.Sentiment, e.ThreadCount)
	}
	w.Flush()
	fmt.Printf("\n%d emails ingested\n", len(emails))
	return nil
}

func runIngestCalendar(deps *IngestCommandDeps, path string) error {
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

	events := deps.NewParser(newLogger(cfg)).Calendar(csvText)

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, events)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLIENT\tTITLE\tDATE\tPARTICIPANTS")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			e.EventID, e.ClientName, e.Title, e.MeetingDate, len(e.Participants))
	}
	w.Flush()
	fmt.Printf("\n%d events ingested\n", len(events))
	return nil
}

// printPlacementTable renders deduplicated, scored records as a terminal
// table, highest priority first.
func printPlacementTable(records []*placement.Record) {
	sorted := make([]*placement.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PriorityScore > sorted[j].PriorityScore
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLACEMENT\tCLIENT\tCARRIER\tSTATUS\tPREMIUM\tEXPIRES IN\tSCORE\tURGENCY")
	for _, rec := range sorted {
		expires := fmt.Sprintf("%dd", rec.DaysUntilExpiry)
		if rec.DaysUntilExpiry >= scoring.DaysUnknown {
			expires = "unknown"
		}
		name := rec.PlacementID
		if name == "" {
			name = "(no id)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\t%s\t%d\t%s\n",
			name, rec.Client, rec.CarrierGroup, rec.PlacementRenewingStatus,
			rec.TotalPremium, expires, rec.PriorityScore,
			scoring.Urgency(rec.DaysUntilExpiry))
	}
	w.Flush()
	fmt.Printf("\n%d placements after deduplication\n", len(records))
}
