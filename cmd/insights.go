package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/insights"
	"github.com/SafeGiantJacket/renewaldesk/pkg/placement"
)

// Insights command flags.
var (
	insightsEmailsFile   string
	insightsCalendarFile string
)

// InsightsCommandDeps holds the dependencies for the insights command.
type InsightsCommandDeps struct {
	*IngestCommandDeps
	Now func() time.Time
}

// DefaultInsightsDeps returns the default dependencies for production use.
func DefaultInsightsDeps() *InsightsCommandDeps {
	return &InsightsCommandDeps{
		IngestCommandDeps: DefaultIngestDeps(),
		Now:               time.Now,
	}
}

// NewInsightsCommand creates the insights command.
func NewInsightsCommand(deps *InsightsCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultInsightsDeps()
	}

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Aggregate email and calendar connector data into engagement insights",
		Long: `Aggregate email and calendar connector data into engagement insights.

Combines pre-labelled email sentiment with meeting proximity into a 0-100
engagement score, plus risk factors and recommended actions. When the next
meeting is within a week the calendar signal carries more weight.

Examples:
  renew insights --emails emails.csv
  renew insights --emails emails.csv --calendar meetings.csv
  renew insights --calendar meetings.csv -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if insightsEmailsFile == "" && insightsCalendarFile == "" {
				return fmt.Errorf("at least one of --emails or --calendar is required")
			}
			return runInsights(deps)
		},
	}

	cmd.Flags().StringVar(&insightsEmailsFile, "emails", "", "Email connector CSV export")
	cmd.Flags().StringVar(&insightsCalendarFile, "calendar", "", "Calendar connector CSV export")

	return cmd
}

func runInsights(deps *InsightsCommandDeps) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(cfg)
	if err != nil {
		return err
	}

	parser := deps.NewParser(newLogger(cfg))

	var emails []placement.Email
	if insightsEmailsFile != "" {
		csvText, err := readInputFile(insightsEmailsFile)
		if err != nil {
			return err
		}
		emails = parser.Emails(csvText)
	}

	var events []placement.CalendarEvent
	if insightsCalendarFile != "" {
		csvText, err := readInputFile(insightsCalendarFile)
		if err != nil {
			return err
		}
		events = parser.Calendar(csvText)
	}

	result := insights.Generate(emails, events, deps.Now())

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, result)
	}
	printInsights(result)
	return nil
}

func printInsights(result insights.ConnectorInsights) {
	fmt.Printf("Combined engagement score: %d/100\n", result.CombinedScore)
	fmt.Printf("Overall sentiment: %s\n", result.OverallSentiment)

	if ea := result.EmailAnalysis; ea != nil {
		fmt.Printf("\nEmail signal: %.0f/100 (%s engagement, %s sentiment)\n",
			ea.EmailScore, ea.EngagementLevel, ea.Sentiment)
		for _, insight := range ea.KeyInsights {
			fmt.Printf("  - %s\n", insight)
		}
	}

	if ca := result.CalendarAnalysis; ca != nil {
		fmt.Printf("\nCalendar signal: %.0f/100 (%s importance)\n",
			ca.CalendarScore, ca.MeetingImportance)
		if ca.DaysToNextMeeting < insights.DaysUnknown {
			fmt.Printf("  Next meeting in %d days", ca.DaysToNextMeeting)
			if result.NextMeetingDate != "" {
				fmt.Printf(" (%s)", result.NextMeetingDate)
			}
			fmt.Println()
		}
		for _, insight := range ca.KeyInsights {
			fmt.Printf("  - %s\n", insight)
		}
	}

	if len(result.RiskFactors) > 0 {
		fmt.Println("\nRisk factors:")
		for _, risk := range result.RiskFactors {
			fmt.Printf("  ! %s\n", risk)
		}
	}

	if len(result.RecommendedActions) > 0 {
		fmt.Println("\nRecommended actions:")
		for _, action := range result.RecommendedActions {
			fmt.Printf("  > %s\n", action)
		}
	}
}
