package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/macbridge/internal/calendar"
	"github.com/teemow/macbridge/internal/config"
	"github.com/teemow/macbridge/internal/eventkit"
	"github.com/teemow/macbridge/internal/notes"
	"github.com/teemow/macbridge/internal/server"
)

// executeCommand runs the root command with the given arguments and
// returns everything written to stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

// memoryContext installs a server context backed by a seeded in-memory
// event store for the duration of the test.
func memoryContext(t *testing.T) *server.Context {
	t.Helper()
	store := eventkit.NewMemStore()
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Personal", Source: "iCloud"})
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Reminders", Source: "iCloud"})

	sc := server.NewContext(config.Default())
	sc.SetCalendarClient(calendar.NewClient(store))
	sctx = sc
	t.Cleanup(func() { sctx = nil })
	return sc
}

type scriptedRunner struct {
	handler func(script string) (string, error)
}

func (r scriptedRunner) Run(ctx context.Context, script string) (string, error) {
	return r.handler(script)
}

func TestDeleteEventUnknownID(t *testing.T) {
	memoryContext(t)

	out, err := executeCommand(t, "calendar", "delete-event", "abc-123")
	require.Error(t, err)
	assert.JSONEq(t, `{"success": false, "error": "Event 'abc-123' not found"}`, out)
}

func TestCreateAndListEvents(t *testing.T) {
	memoryContext(t)

	out, err := executeCommand(t, "calendar", "create-event", "Standup",
		"--start", "2026-03-02T09:00:00", "--duration", "30")
	require.NoError(t, err)

	var created struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Event   struct {
			EventID string `json:"event_id"`
			Start   string `json:"start"`
		} `json:"event"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "Created event 'Standup'", created.Message)
	assert.NotEmpty(t, created.Event.EventID)

	out, err = executeCommand(t, "calendar", "list-events",
		"--start", "2026-03-02", "--days", "1")
	require.NoError(t, err)

	var listed struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Events  []struct {
			Title string `json:"title"`
		} `json:"events"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	assert.True(t, listed.Success)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, "Standup", listed.Events[0].Title)
}

func TestCreateReminderInvalidPriority(t *testing.T) {
	memoryContext(t)

	out, err := executeCommand(t, "calendar", "create-reminder", "Buy milk", "--priority", "3")
	require.Error(t, err)
	assert.JSONEq(t, `{"success": false, "error": "invalid priority 3 (must be 0, 1, 5, or 9)"}`, out)
}

func TestNotesListAccounts(t *testing.T) {
	sc := memoryContext(t)
	sc.SetNotesClient(notes.NewClient(scriptedRunner{
		handler: func(script string) (string, error) {
			return "iCloud\nWork", nil
		},
	}))

	out, err := executeCommand(t, "notes", "list-accounts")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "accounts": ["iCloud", "Work"], "count": 2}`, out)
}

func TestNotesReadNotFound(t *testing.T) {
	sc := memoryContext(t)
	sc.SetNotesClient(notes.NewClient(scriptedRunner{
		handler: func(script string) (string, error) {
			return "ERROR: note not found", nil
		},
	}))

	out, err := executeCommand(t, "notes", "read", "--title", "Missing", "--account", "iCloud")
	require.Error(t, err)
	assert.JSONEq(t, `{"success": false, "error": "ERROR: note not found"}`, out)
}

func TestNotesListNotes(t *testing.T) {
	sc := memoryContext(t)
	sc.SetNotesClient(notes.NewClient(scriptedRunner{
		handler: func(script string) (string, error) {
			return "A > One\nB > Two", nil
		},
	}))

	out, err := executeCommand(t, "notes", "list-notes")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "notes": ["A > One", "B > Two"], "count": 2}`, out)
}

func TestNotesCreateWithFlags(t *testing.T) {
	sc := memoryContext(t)
	sc.SetNotesClient(notes.NewClient(scriptedRunner{
		handler: func(script string) (string, error) {
			return "iCloud", nil
		},
	}))

	out, err := executeCommand(t, "notes", "create", "--title", "Todo", "--body", "buy milk")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "message": "Created note 'Todo' in iCloud"}`, out)
}

func TestNotesSearchWithQueryFlag(t *testing.T) {
	sc := memoryContext(t)
	sc.SetNotesClient(notes.NewClient(scriptedRunner{
		handler: func(script string) (string, error) {
			return "A > Remember", nil
		},
	}))

	out, err := executeCommand(t, "notes", "search", "--query", "milk")
	require.NoError(t, err)
	assert.JSONEq(t, `{"success": true, "notes": ["A > Remember"], "count": 1}`, out)
}
