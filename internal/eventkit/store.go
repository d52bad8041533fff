package eventkit

import "context"

// Store is the capability-gated event/reminder store. The calendar and
// reminder surfaces consume it exclusively through this interface; the
// darwin backend talks to the native framework, MemStore backs tests
// and development.
//
// Lookups by id return (nil, nil) when the id is unknown; callers own
// the not-found message. Save assigns an ID to records that have none.
// RemindersMatching takes a context because the native fetch is
// asynchronous and bridged to a bounded synchronous call.
type Store interface {
	// AuthorizationStatus reports the host's grant state without
	// prompting.
	AuthorizationStatus(entity EntityType) AuthStatus

	// RequestAccess issues the host's asynchronous grant request. fn
	// may be invoked from another thread, late, or never.
	RequestAccess(entity EntityType, fn func(granted bool, err error))

	// Calendars enumerates containers for the entity type in host
	// order.
	Calendars(entity EntityType) ([]Calendar, error)

	// DefaultCalendar returns the host's default container for new
	// items of the entity type.
	DefaultCalendar(entity EntityType) (Calendar, error)

	EventsMatching(p EventPredicate) ([]Event, error)
	EventByID(id string) (*Event, error)
	SaveEvent(e *Event, span Span) error
	RemoveEvent(e *Event, span Span) error

	RemindersMatching(ctx context.Context, p ReminderPredicate) ([]Reminder, error)
	ReminderByID(id string) (*Reminder, error)
	SaveReminder(r *Reminder) error
	RemoveReminder(r *Reminder) error
}
