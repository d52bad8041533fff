package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/teemow/macbridge/internal/authz"
	"github.com/teemow/macbridge/internal/errs"
	"github.com/teemow/macbridge/internal/eventkit"
	"github.com/teemow/macbridge/internal/scope"
)

// Client provides access to calendars, events and reminders. Every
// operation ensures the matching capability through the broker before
// touching the store; a denied capability aborts the whole operation.
type Client struct {
	store  eventkit.Store
	broker *authz.Broker
}

// NewClient returns a client over the given store with a fresh broker.
func NewClient(store eventkit.Store) *Client {
	return &Client{
		store:  store,
		broker: authz.NewBroker(ekHost{store: store}),
	}
}

// NewClientWithBroker returns a client with an explicit broker, for
// callers that share one broker across surfaces or shorten the grant
// wait in tests.
func NewClientWithBroker(store eventkit.Store, broker *authz.Broker) *Client {
	return &Client{store: store, broker: broker}
}

// ekHost adapts the event store's authorization surface to the broker's
// Host interface.
type ekHost struct {
	store eventkit.Store
}

func capabilityEntity(c authz.Capability) eventkit.EntityType {
	if c == authz.CapabilityReminders {
		return eventkit.EntityReminder
	}
	return eventkit.EntityEvent
}

func (h ekHost) Status(c authz.Capability) authz.Status {
	switch h.store.AuthorizationStatus(capabilityEntity(c)) {
	case eventkit.AuthAuthorized:
		return authz.StatusGranted
	case eventkit.AuthDenied:
		return authz.StatusDenied
	}
	return authz.StatusUndetermined
}

func (h ekHost) RequestAccess(c authz.Capability, fn func(granted bool, err error)) {
	h.store.RequestAccess(capabilityEntity(c), fn)
}

// Containers enumerates calendars or reminder lists as scope handles,
// implementing scope.Lister. The calendar's source is its account.
func (c *Client) Containers(ctx context.Context, kind scope.Kind) ([]scope.Handle, error) {
	var entity eventkit.EntityType
	switch kind {
	case scope.Events:
		entity = eventkit.EntityEvent
	case scope.Reminders:
		entity = eventkit.EntityReminder
	default:
		return nil, fmt.Errorf("kind %q not served by the event store", kind)
	}

	cals, err := c.store.Calendars(entity)
	if err != nil {
		return nil, err
	}
	handles := make([]scope.Handle, 0, len(cals))
	for _, cal := range cals {
		handles = append(handles, scope.Handle{
			Account:   cal.Source,
			Container: cal.Title,
			ID:        cal.ID,
		})
	}
	return handles, nil
}

// resolveContainer maps a container name to its store id. The first
// handle wins when several containers share the name.
func (c *Client) resolveContainer(ctx context.Context, kind scope.Kind, name string) (string, error) {
	handles, err := scope.Resolve(ctx, c, kind, scope.Selector{Container: name})
	if err != nil {
		return "", err
	}
	return handles[0].ID, nil
}

// ListCalendars returns all event calendars.
func (c *Client) ListCalendars(ctx context.Context) ([]CalendarInfo, error) {
	if err := c.broker.Ensure(authz.CapabilityCalendarEvents); err != nil {
		return nil, err
	}
	cals, err := c.store.Calendars(eventkit.EntityEvent)
	if err != nil {
		return nil, err
	}
	out := make([]CalendarInfo, 0, len(cals))
	for _, cal := range cals {
		out = append(out, toCalendarInfo(cal))
	}
	return out, nil
}

// ListEvents returns events overlapping [start, end), optionally
// restricted to named calendars.
func (c *Client) ListEvents(ctx context.Context, start, end time.Time, calendars []string) ([]EventRecord, error) {
	if err := c.broker.Ensure(authz.CapabilityCalendarEvents); err != nil {
		return nil, err
	}

	var ids []string
	for _, name := range calendars {
		id, err := c.resolveContainer(ctx, scope.Events, name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	events, err := c.store.EventsMatching(eventkit.EventPredicate{
		Start:     start,
		End:       end,
		Calendars: ids,
	})
	if err != nil {
		return nil, err
	}
	out := make([]EventRecord, 0, len(events))
	for _, e := range events {
		out = append(out, toEventRecord(e))
	}
	return out, nil
}

// CreateEvent makes a new event, in the default calendar when none is
// named.
func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*EventRecord, error) {
	if err := c.broker.Ensure(authz.CapabilityCalendarEvents); err != nil {
		return nil, err
	}

	e := eventkit.Event{
		Title:    in.Title,
		Start:    in.Start,
		End:      in.End,
		AllDay:   in.AllDay,
		Location: in.Location,
		Notes:    in.Notes,
		URL:      in.URL,
	}
	if in.Calendar != "" {
		id, err := c.resolveContainer(ctx, scope.Events, in.Calendar)
		if err != nil {
			return nil, err
		}
		e.CalendarID = id
	}

	if err := c.store.SaveEvent(&e, eventkit.SpanThisEvent); err != nil {
		return nil, errs.Newf(errs.KindNativeFailure, "create-event",
			"Failed to save event: %v", err)
	}
	rec := toEventRecord(e)
	return &rec, nil
}

// UpdateEvent applies partial changes to an event by id.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, upd EventUpdate) (*EventRecord, error) {
	if err := c.broker.Ensure(authz.CapabilityCalendarEvents); err != nil {
		return nil, err
	}

	e, err := c.store.EventByID(eventID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, errs.Newf(errs.KindItemNotFound, "update-event",
			"Event '%s' not found", eventID)
	}

	if upd.Title != nil {
		e.Title = *upd.Title
	}
	if upd.Start != nil {
		e.Start = *upd.Start
	}
	if upd.End != nil {
		e.End = *upd.End
	}
	if upd.Location != nil {
		e.Location = *upd.Location
	}
	if upd.Notes != nil {
		e.Notes = *upd.Notes
	}

	span := eventkit.SpanThisEvent
	if upd.FutureEvents {
		span = eventkit.SpanFutureEvents
	}
	if err := c.store.SaveEvent(e, span); err != nil {
		return nil, errs.Newf(errs.KindNativeFailure, "update-event",
			"Failed to update event: %v", err)
	}
	rec := toEventRecord(*e)
	return &rec, nil
}

// DeleteEvent removes an event by id. With futureEvents set the removal
// covers all future occurrences of a recurring event.
func (c *Client) DeleteEvent(ctx context.Context, eventID string, futureEvents bool) error {
	if err := c.broker.Ensure(authz.CapabilityCalendarEvents); err != nil {
		return err
	}

	e, err := c.store.EventByID(eventID)
	if err != nil {
		return err
	}
	if e == nil {
		return errs.Newf(errs.KindItemNotFound, "delete-event",
			"Event '%s' not found", eventID)
	}

	span := eventkit.SpanThisEvent
	if futureEvents {
		span = eventkit.SpanFutureEvents
	}
	if err := c.store.RemoveEvent(e, span); err != nil {
		return errs.Newf(errs.KindNativeFailure, "delete-event",
			"Failed to delete event: %v", err)
	}
	return nil
}

// ListReminderLists returns all reminder lists.
func (c *Client) ListReminderLists(ctx context.Context) ([]CalendarInfo, error) {
	if err := c.broker.Ensure(authz.CapabilityReminders); err != nil {
		return nil, err
	}
	cals, err := c.store.Calendars(eventkit.EntityReminder)
	if err != nil {
		return nil, err
	}
	out := make([]CalendarInfo, 0, len(cals))
	for _, cal := range cals {
		out = append(out, toCalendarInfo(cal))
	}
	return out, nil
}

// ListReminders returns reminders, optionally restricted to one named
// list. Completed reminders are excluded unless includeCompleted is
// set.
func (c *Client) ListReminders(ctx context.Context, listName string, includeCompleted bool) ([]ReminderRecord, error) {
	if err := c.broker.Ensure(authz.CapabilityReminders); err != nil {
		return nil, err
	}

	var ids []string
	if listName != "" {
		id, err := c.resolveContainer(ctx, scope.Reminders, listName)
		if err != nil {
			return nil, err
		}
		ids = []string{id}
	}

	reminders, err := c.store.RemindersMatching(ctx, eventkit.ReminderPredicate{
		IncludeCompleted: includeCompleted,
		Calendars:        ids,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ReminderRecord, 0, len(reminders))
	for _, r := range reminders {
		out = append(out, toReminderRecord(r))
	}
	return out, nil
}

// validPriority enforces the store's priority scale at the encoding
// boundary; the decoder passes priorities through unchecked.
func validPriority(p int) error {
	switch p {
	case 0, 1, 5, 9:
		return nil
	}
	return fmt.Errorf("invalid priority %d (must be 0, 1, 5, or 9)", p)
}

// CreateReminder makes a new reminder, in the default list when none is
// named.
func (c *Client) CreateReminder(ctx context.Context, in ReminderInput) (*ReminderRecord, error) {
	if err := c.broker.Ensure(authz.CapabilityReminders); err != nil {
		return nil, err
	}
	if err := validPriority(in.Priority); err != nil {
		return nil, err
	}

	r := eventkit.Reminder{
		Title:    in.Title,
		Notes:    in.Notes,
		Priority: in.Priority,
	}
	if in.Due != nil {
		due := eventkit.ComponentsOf(*in.Due)
		r.Due = &due
	}
	if in.List != "" {
		id, err := c.resolveContainer(ctx, scope.Reminders, in.List)
		if err != nil {
			return nil, err
		}
		r.CalendarID = id
	}

	if err := c.store.SaveReminder(&r); err != nil {
		return nil, errs.Newf(errs.KindNativeFailure, "create-reminder",
			"Failed to save reminder: %v", err)
	}
	rec := toReminderRecord(r)
	return &rec, nil
}

// CompleteReminder marks a reminder completed or, with completed false,
// reopens it.
func (c *Client) CompleteReminder(ctx context.Context, reminderID string, completed bool) (*CompleteResult, error) {
	if err := c.broker.Ensure(authz.CapabilityReminders); err != nil {
		return nil, err
	}

	r, err := c.store.ReminderByID(reminderID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errs.Newf(errs.KindItemNotFound, "complete-reminder",
			"Reminder '%s' not found", reminderID)
	}

	r.Completed = completed
	if completed {
		now := time.Now()
		r.CompletionDate = &now
	} else {
		r.CompletionDate = nil
	}

	if err := c.store.SaveReminder(r); err != nil {
		return nil, errs.Newf(errs.KindNativeFailure, "complete-reminder",
			"Failed to update reminder: %v", err)
	}
	return &CompleteResult{
		ReminderID: reminderID,
		Title:      r.Title,
		Completed:  completed,
	}, nil
}

// UpdateReminder applies partial changes to a reminder by id.
func (c *Client) UpdateReminder(ctx context.Context, reminderID string, upd ReminderUpdate) (*ReminderRecord, error) {
	if err := c.broker.Ensure(authz.CapabilityReminders); err != nil {
		return nil, err
	}
	if upd.Priority != nil {
		if err := validPriority(*upd.Priority); err != nil {
			return nil, err
		}
	}

	r, err := c.store.ReminderByID(reminderID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, errs.Newf(errs.KindItemNotFound, "update-reminder",
			"Reminder '%s' not found", reminderID)
	}

	if upd.Title != nil {
		r.Title = *upd.Title
	}
	if upd.Due != nil {
		due := eventkit.ComponentsOf(*upd.Due)
		r.Due = &due
	}
	if upd.Notes != nil {
		r.Notes = *upd.Notes
	}
	if upd.Priority != nil {
		r.Priority = *upd.Priority
	}

	if err := c.store.SaveReminder(r); err != nil {
		return nil, errs.Newf(errs.KindNativeFailure, "update-reminder",
			"Failed to update reminder: %v", err)
	}
	rec := toReminderRecord(*r)
	return &rec, nil
}

// DeleteReminder removes a reminder by id.
func (c *Client) DeleteReminder(ctx context.Context, reminderID string) error {
	if err := c.broker.Ensure(authz.CapabilityReminders); err != nil {
		return err
	}

	r, err := c.store.ReminderByID(reminderID)
	if err != nil {
		return err
	}
	if r == nil {
		return errs.Newf(errs.KindItemNotFound, "delete-reminder",
			"Reminder '%s' not found", reminderID)
	}
	if err := c.store.RemoveReminder(r); err != nil {
		return errs.Newf(errs.KindNativeFailure, "delete-reminder",
			"Failed to delete reminder: %v", err)
	}
	return nil
}
