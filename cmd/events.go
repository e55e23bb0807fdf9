package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
)

// Events command flags.
var (
	eventDescription string
	eventDate        string
	eventType        string
	eventPriority    string
	eventBrokerID    string
)

// eventDateLayouts are accepted values for --date.
var eventDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// NewEventsCommand creates the events command and its subcommands.
func NewEventsCommand(deps *StoreCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultStoreDeps()
	}

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage scheduled follow-ups on placements",
		Long: `Manage scheduled follow-ups on placements.

Events live in the configured store backend, sorted soonest first. Use
"events complete" or "events cancel" to move them through their lifecycle.`,
	}

	cmd.AddCommand(newEventsAddCommand(deps))
	cmd.AddCommand(newEventsListCommand(deps))
	cmd.AddCommand(newEventsStatusCommand(deps, "complete", store.StatusCompleted))
	cmd.AddCommand(newEventsStatusCommand(deps, "cancel", store.StatusCancelled))
	cmd.AddCommand(newEventsDeleteCommand(deps))

	return cmd
}

func newEventsAddCommand(deps *StoreCommandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <placement_id> <title>",
		Short: "Schedule an event on a placement",
		Long: `Schedule an event on a placement.

Examples:
  renew events add PLC-2024-001 "Renewal review" --date 2026-10-01
  renew events add PLC-2024-001 "Carrier call" --date "2026-09-15 14:00" --type call --priority high`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsAdd(cmd.Context(), deps, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&eventDescription, "description", "", "Event description")
	cmd.Flags().StringVar(&eventDate, "date", "", "Event date (YYYY-MM-DD, optionally with HH:MM) (required)")
	cmd.Flags().StringVar(&eventType, "type", "", "Type: renewal, meeting, call, followup, other")
	cmd.Flags().StringVar(&eventPriority, "priority", "", "Priority: low, medium, high")
	cmd.Flags().StringVar(&eventBrokerID, "broker", "", "Broker identifier")
	cmd.MarkFlagRequired("date")

	return cmd
}

func newEventsListCommand(deps *StoreCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "list [placement_id]",
		Short: "List scheduled events, optionally for one placement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			placementID := ""
			if len(args) == 1 {
				placementID = args[0]
			}
			return runEventsList(cmd.Context(), deps, placementID)
		},
	}
}

func newEventsStatusCommand(deps *StoreCommandDeps, verb string, status store.EventStatus) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <event_id>",
		Short: "Mark an event as " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsStatus(cmd.Context(), deps, args[0], status)
		},
	}
}

func newEventsDeleteCommand(deps *StoreCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event_id>",
		Short: "Delete an event by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsDelete(cmd.Context(), deps, args[0])
		},
	}
}

func runEventsAdd(ctx context.Context, deps *StoreCommandDeps, placementID, title string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}

	date, err := parseEventDate(eventDate)
	if err != nil {
		return err
	}

	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	saved, err := st.AddEvent(ctx, store.ScheduledEvent{
		PlacementID: placementID,
		Title:       title,
		Description: eventDescription,
		EventDate:   date,
		Type:        store.EventType(eventType),
		Priority:    store.EventPriority(eventPriority),
		BrokerID:    eventBrokerID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Event %s scheduled for %s\n", saved.ID, saved.EventDate.Format("2006-01-02 15:04"))
	return nil
}

func runEventsList(ctx context.Context, deps *StoreCommandDeps, placementID string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	format, err := resolveOutputFormat(cfg)
	if err != nil {
		return err
	}
	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	events, err := st.ListEvents(ctx, placementID)
	if err != nil {
		return err
	}

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, events)
	}

	if len(events) == 0 {
		fmt.Println("No events found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLACEMENT\tDATE\tTYPE\tPRIORITY\tSTATUS\tTITLE")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.PlacementID, e.EventDate.Format("2006-01-02 15:04"),
			e.Type, e.Priority, e.Status, e.Title)
	}
	w.Flush()
	return nil
}

func runEventsStatus(ctx context.Context, deps *StoreCommandDeps, id string, status store.EventStatus) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.UpdateEventStatus(ctx, id, status); err != nil {
		return err
	}
	fmt.Printf("Event %s marked %s\n", id, status)
	return nil
}

func runEventsDelete(ctx context.Context, deps *StoreCommandDeps, id string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteEvent(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Event %s deleted\n", id)
	return nil
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range eventDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --date %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", value)
}
