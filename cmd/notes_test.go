package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafeGiantJacket/renewaldesk/config"
	"github.com/SafeGiantJacket/renewaldesk/pkg/store"
)

// testStoreDeps shares one memory store across command invocations so
// add/list/delete sequences see each other's writes.
func testStoreDeps() (*StoreCommandDeps, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	deps := &StoreCommandDeps{
		LoadConfig: func() (*config.CLIConfig, error) {
			return config.DefaultConfig(), nil
		},
		OpenStore: func(ctx context.Context, cfg *config.CLIConfig) (store.Store, error) {
			return mem, nil
		},
	}
	return deps, mem
}

func TestRunNotesAddAndList(t *testing.T) {
	deps, mem := testStoreDeps()
	ctx := context.Background()

	require.NoError(t, runNotesAdd(ctx, deps, "PLC-1", "Chase the quote"))

	notes, err := mem.ListNotes(ctx, "PLC-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Chase the quote", notes[0].Title)

	assert.NoError(t, runNotesList(ctx, deps, "PLC-1"))
}

func TestRunNotesAdd_TagsAndCategory(t *testing.T) {
	deps, mem := testStoreDeps()
	ctx := context.Background()

	noteCategory = "followup"
	noteTags = "renewal,urgent"
	t.Cleanup(func() {
		noteCategory = ""
		noteTags = ""
	})

	require.NoError(t, runNotesAdd(ctx, deps, "PLC-1", "tagged"))

	notes, err := mem.ListNotes(ctx, "PLC-1")
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, store.NoteFollowup, notes[0].Category)
	assert.Equal(t, []string{"renewal", "urgent"}, notes[0].Tags)
}

func TestRunNotesDelete_NotFound(t *testing.T) {
	deps, _ := testStoreDeps()
	err := runNotesDelete(context.Background(), deps, "missing")
	assert.Error(t, err)
}

func TestRunEventsAddAndComplete(t *testing.T) {
	deps, mem := testStoreDeps()
	ctx := context.Background()

	eventDate = "2026-10-01"
	t.Cleanup(func() { eventDate = "" })

	require.NoError(t, runEventsAdd(ctx, deps, "PLC-1", "Renewal review"))

	events, err := mem.ListEvents(ctx, "PLC-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, store.StatusScheduled, events[0].Status)

	require.NoError(t, runEventsStatus(ctx, deps, events[0].ID, store.StatusCompleted))

	events, err = mem.ListEvents(ctx, "PLC-1")
	require.NoError(t, err)
	assert.Equal(t, store.StatusCompleted, events[0].Status)
}

func TestRunEventsAdd_BadDate(t *testing.T) {
	deps, _ := testStoreDeps()

	eventDate = "next tuesday"
	t.Cleanup(func() { eventDate = "" })

	err := runEventsAdd(context.Background(), deps, "PLC-1", "bad date")
	assert.Error(t, err)
}

func TestRunEventsList_Empty(t *testing.T) {
	deps, _ := testStoreDeps()
	assert.NoError(t, runEventsList(context.Background(), deps, ""))
}
