package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
)

// Notes command flags.
var (
	noteContent  string
	noteCategory string
	noteTags     string
	noteBrokerID string
)

// StoreCommandDeps holds the dependencies for store-backed commands.
type StoreCommandDeps struct {
	LoadConfig func() (*config.CLIConfig, error)
	OpenStore  func(ctx context.Context, cfg *config.CLIConfig) (store.Store, error)
}

// DefaultStoreDeps returns the default dependencies for production use.
func DefaultStoreDeps() *StoreCommandDeps {
	return &StoreCommandDeps{
		LoadConfig: config.LoadConfig,
		OpenStore:  openStore,
	}
}

// NewNotesCommand creates the notes command and its subcommands.
func NewNotesCommand(deps *StoreCommandDeps) *cobra.Command {
	if deps == nil {
		deps = DefaultStoreDeps()
	}

	cmd := &cobra.Command{
		Use:   "notes",
		Short: "Manage broker notes on placements",
		Long: `Manage broker notes on placements.

Notes live in the configured store backend. The memory backend is only
useful within a single process; use postgres or redis for persistence.`,
	}

	cmd.AddCommand(newNotesAddCommand(deps))
	cmd.AddCommand(newNotesListCommand(deps))
	cmd.AddCommand(newNotesDeleteCommand(deps))

	return cmd
}

func newNotesAddCommand(deps *StoreCommandDeps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <placement_id> <title>",
		Short: "Add a note to a placement",
		Long: `Add a note to a placement.

Examples:
  renew notes add PLC-2024-001 "Client wants competing quotes"
  renew notes add PLC-2024-001 "Chase carrier" --category followup --tags renewal,urgent`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesAdd(cmd.Context(), deps, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&noteContent, "content", "", "Note body")
	cmd.Flags().StringVar(&noteCategory, "category", "", "Category: general, important, followup, issue")
	cmd.Flags().StringVar(&noteTags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&noteBrokerID, "broker", "", "Broker identifier")

	return cmd
}

func newNotesListCommand(deps *StoreCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "list [placement_id]",
		Short: "List notes, optionally for one placement",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			placementID := ""
			if len(args) == 1 {
				placementID = args[0]
			}
			return runNotesList(cmd.Context(), deps, placementID)
		},
	}
}

func newNotesDeleteCommand(deps *StoreCommandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note_id>",
		Short: "Delete a note by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNotesDelete(cmd.Context(), deps, args[0])
		},
	}
}

func runNotesAdd(ctx context.Context, deps *StoreCommandDeps, placementID, title string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	note := store.BrokerNote{
		PlacementID: placementID,
		Title:       title,
		Content:     noteContent,
		Category:    store.NoteCategory(noteCategory),
		BrokerID:    noteBrokerID,
	}
	if noteTags != "" {
		note.Tags = strings.Split(noteTags, ",")
	}

	saved, err := st.AddNote(ctx, note)
	if err != nil {
		return err
	}
	fmt.Printf("Note %s added to %s\n", saved.ID, saved.PlacementID)
	return nil
}

func runNotesList(ctx context.Context, deps *StoreCommandDeps, placementID string) error {
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

	notes, err := st.ListNotes(ctx, placementID)
	if err != nil {
		return err
	}

	if format != config.OutputFormatText {
		return writeFormatted(os.Stdout, format, notes)
	}

	if len(notes) == 0 {
		fmt.Println("No notes found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPLACEMENT\tCATEGORY\tTITLE\tCREATED")
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			n.ID, n.PlacementID, n.Category, n.Title, n.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runNotesDelete(ctx context.Context, deps *StoreCommandDeps, id string) error {
	cfg, err := deps.LoadConfig()
	if err != nil {
		return err
	}
	st, err := deps.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteNote(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Note %s deleted\n", id)
	return nil
}
