package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/macbridge/internal/authz"
	"github.com/teemow/macbridge/internal/errs"
	"github.com/teemow/macbridge/internal/eventkit"
)

func newTestClient(t *testing.T) (*Client, *eventkit.MemStore) {
	t.Helper()
	store := eventkit.NewMemStore()
	return NewClient(store), store
}

type denyingHost struct{}

func (denyingHost) Status(authz.Capability) authz.Status { return authz.StatusDenied }
func (denyingHost) RequestAccess(authz.Capability, func(granted bool, err error)) {
}

func TestListCalendars(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Work", Source: "iCloud"})
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Home", Source: "iCloud"})

	cals, err := c.ListCalendars(context.Background())
	require.NoError(t, err)
	require.Len(t, cals, 2)
	assert.Equal(t, "Work", cals[0].Title)
	assert.Equal(t, "iCloud", cals[0].Source)
	assert.NotEmpty(t, cals[0].CalendarID)
}

func TestPermissionDeniedAbortsOperation(t *testing.T) {
	store := eventkit.NewMemStore()
	c := NewClientWithBroker(store, authz.NewBroker(denyingHost{}))

	_, err := c.ListCalendars(context.Background())
	require.Error(t, err)
	assert.Equal(t, errs.KindPermissionDenied, errs.KindOf(err))
	assert.Equal(t, "Calendar access not granted", err.Error())

	_, err = c.ListReminders(context.Background(), "", false)
	require.Error(t, err)
	assert.Equal(t, "Reminders access not granted", err.Error())
}

func TestCreateAndListEvents(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Work"})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	rec, err := c.CreateEvent(context.Background(), EventInput{
		Title:    "planning",
		Start:    start,
		End:      start.Add(time.Hour),
		Location: "room 2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.EventID)
	assert.Equal(t, "Work", rec.Calendar)
	assert.Equal(t, start.Format(time.RFC3339), rec.Start)

	events, err := c.ListEvents(context.Background(), start.Add(-time.Hour), start.Add(2*time.Hour), nil)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "planning", events[0].Title)
	assert.Equal(t, "room 2", events[0].Location)
}

func TestCreateEventUnknownCalendar(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Work"})

	_, err := c.CreateEvent(context.Background(), EventInput{
		Title:    "x",
		Start:    time.Now(),
		End:      time.Now().Add(time.Hour),
		Calendar: "Nope",
	})
	require.Error(t, err)
	assert.Equal(t, errs.KindScopeNotFound, errs.KindOf(err))
	assert.Equal(t, "Calendar 'Nope' not found", err.Error())
}

func TestUpdateEvent(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Work"})

	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	rec, err := c.CreateEvent(context.Background(), EventInput{
		Title: "planning", Start: start, End: start.Add(time.Hour),
	})
	require.NoError(t, err)

	title := "replanning"
	loc := "room 5"
	updated, err := c.UpdateEvent(context.Background(), rec.EventID, EventUpdate{
		Title:    &title,
		Location: &loc,
	})
	require.NoError(t, err)
	assert.Equal(t, "replanning", updated.Title)
	assert.Equal(t, "room 5", updated.Location)
	assert.Equal(t, rec.Start, updated.Start, "unset fields stay unchanged")
}

func TestDeleteEventUnknownID(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityEvent, eventkit.Calendar{Title: "Work"})

	err := c.DeleteEvent(context.Background(), "abc-123", false)
	require.Error(t, err)
	assert.Equal(t, errs.KindItemNotFound, errs.KindOf(err))
	assert.Equal(t, "Event 'abc-123' not found", err.Error())
}

func TestCreateReminderRoundTrip(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Errands"})

	due := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)
	rec, err := c.CreateReminder(context.Background(), ReminderInput{
		Title:    "Buy milk",
		Due:      &due,
		Priority: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Errands", rec.List)

	reminders, err := c.ListReminders(context.Background(), "", false)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	got := reminders[0]
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, 1, got.Priority)
	assert.False(t, got.Completed)
	require.NotNil(t, got.DueDate)

	parsed, err := time.Parse(time.RFC3339, *got.DueDate)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(due), "due date survives the component round trip")
}

func TestCreateReminderInvalidPriority(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Errands"})

	_, err := c.CreateReminder(context.Background(), ReminderInput{Title: "x", Priority: 3})
	require.Error(t, err)
	assert.Equal(t, "invalid priority 3 (must be 0, 1, 5, or 9)", err.Error())
}

func TestListRemindersUnknownList(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Errands"})

	_, err := c.ListReminders(context.Background(), "Nope", false)
	require.Error(t, err)
	assert.Equal(t, errs.KindScopeNotFound, errs.KindOf(err))
	assert.Equal(t, "Reminder list 'Nope' not found", err.Error())
}

func TestCompleteReminder(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Errands"})

	rec, err := c.CreateReminder(context.Background(), ReminderInput{Title: "Buy milk"})
	require.NoError(t, err)

	res, err := c.CompleteReminder(context.Background(), rec.ReminderID, true)
	require.NoError(t, err)
	assert.True(t, res.Completed)

	open, err := c.ListReminders(context.Background(), "", false)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := c.ListReminders(context.Background(), "", true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Completed)

	res, err = c.CompleteReminder(context.Background(), rec.ReminderID, false)
	require.NoError(t, err)
	assert.False(t, res.Completed)
}

func TestUpdateReminder(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Errands"})

	rec, err := c.CreateReminder(context.Background(), ReminderInput{Title: "Buy milk"})
	require.NoError(t, err)

	prio := 5
	due := time.Date(2026, 7, 1, 12, 0, 0, 0, time.Local)
	updated, err := c.UpdateReminder(context.Background(), rec.ReminderID, ReminderUpdate{
		Priority: &prio,
		Due:      &due,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Priority)
	assert.Equal(t, "Buy milk", updated.Title)
	require.NotNil(t, updated.DueDate)
}

func TestDeleteReminderUnknownID(t *testing.T) {
	c, store := newTestClient(t)
	store.AddCalendar(eventkit.EntityReminder, eventkit.Calendar{Title: "Errands"})

	err := c.DeleteReminder(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "Reminder 'missing' not found", err.Error())
}
