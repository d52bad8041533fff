package eventkit

import "time"

// EntityType selects between the two item families the store holds.
type EntityType int

const (
	EntityEvent EntityType = iota
	EntityReminder
)

// AuthStatus is the host's authorization state for an entity type.
type AuthStatus int

const (
	AuthNotDetermined AuthStatus = iota
	AuthDenied
	AuthAuthorized
)

// Span selects how far a save or removal of a recurring event reaches.
type Span int

const (
	SpanThisEvent Span = iota
	SpanFutureEvents
)

// Calendar is a container for events or reminders. Source is the
// account the calendar belongs to (iCloud, Google, local, ...).
type Calendar struct {
	ID                  string
	Title               string
	Source              string
	AllowsModifications bool
	Color               string
}

// Event is a calendar event in canonical form. Start and End are
// absolute instants; the store converts to and from its native date
// representation at the boundary.
type Event struct {
	ID            string
	Title         string
	Start         time.Time
	End           time.Time
	AllDay        bool
	Location      string
	Notes         string
	URL           string
	CalendarID    string
	CalendarTitle string
}

// Reminder is a reminder in canonical form. Due is nil when the
// reminder has no due date; the store keeps due dates as calendar
// components, not instants, so the field uses DateComponents.
type Reminder struct {
	ID             string
	Title          string
	Due            *DateComponents
	Notes          string
	Priority       int
	Completed      bool
	CompletionDate *time.Time
	CalendarID     string
	CalendarTitle  string
}

// EventPredicate selects events by time window and optionally by
// calendar. It is built from typed values only; there is no string
// interpolation anywhere on this query path.
type EventPredicate struct {
	Start time.Time
	End   time.Time

	// Calendars restricts the query to the given calendar IDs.
	// Nil means all calendars.
	Calendars []string
}

// ReminderPredicate selects reminders. Completed reminders are excluded
// unless IncludeCompleted is set.
type ReminderPredicate struct {
	IncludeCompleted bool

	// Calendars restricts the query to the given calendar IDs.
	// Nil means all reminder lists.
	Calendars []string
}
