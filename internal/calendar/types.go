package calendar

import (
	"time"

	"github.com/teemow/macbridge/internal/eventkit"
)

// CalendarInfo describes one calendar or reminder list.
type CalendarInfo struct {
	Title               string `json:"title"`
	CalendarID          string `json:"calendar_id"`
	Source              string `json:"source,omitempty"`
	AllowsModifications bool   `json:"allows_modifications"`
	Color               string `json:"color,omitempty"`
}

// EventRecord is a calendar event in wire form. Start and End are
// RFC3339 with offset.
type EventRecord struct {
	EventID  string `json:"event_id"`
	Title    string `json:"title"`
	Start    string `json:"start"`
	End      string `json:"end"`
	AllDay   bool   `json:"all_day"`
	Location string `json:"location,omitempty"`
	Notes    string `json:"notes,omitempty"`
	URL      string `json:"url,omitempty"`
	Calendar string `json:"calendar"`
}

// ReminderRecord is a reminder in wire form. DueDate is RFC3339 with
// offset, or null when the reminder has no due date.
type ReminderRecord struct {
	ReminderID string  `json:"reminder_id"`
	Title      string  `json:"title"`
	DueDate    *string `json:"due_date"`
	Notes      string  `json:"notes,omitempty"`
	Priority   int     `json:"priority"`
	Completed  bool    `json:"completed"`
	List       string  `json:"list"`
}

// CompleteResult reports a completion toggle.
type CompleteResult struct {
	ReminderID string `json:"reminder_id"`
	Title      string `json:"title"`
	Completed  bool   `json:"completed"`
}

// EventInput carries the fields of a new event.
type EventInput struct {
	Title    string
	Start    time.Time
	End      time.Time
	Calendar string
	Location string
	Notes    string
	URL      string
	AllDay   bool
}

// EventUpdate carries partial changes to an event. Nil fields stay
// unchanged.
type EventUpdate struct {
	Title        *string
	Start        *time.Time
	End          *time.Time
	Location     *string
	Notes        *string
	FutureEvents bool
}

// ReminderInput carries the fields of a new reminder.
type ReminderInput struct {
	Title    string
	Due      *time.Time
	List     string
	Notes    string
	Priority int
}

// ReminderUpdate carries partial changes to a reminder. Nil fields stay
// unchanged.
type ReminderUpdate struct {
	Title    *string
	Due      *time.Time
	Notes    *string
	Priority *int
}

func toCalendarInfo(cal eventkit.Calendar) CalendarInfo {
	return CalendarInfo{
		Title:               cal.Title,
		CalendarID:          cal.ID,
		Source:              cal.Source,
		AllowsModifications: cal.AllowsModifications,
		Color:               cal.Color,
	}
}

func toEventRecord(e eventkit.Event) EventRecord {
	return EventRecord{
		EventID:  e.ID,
		Title:    e.Title,
		Start:    e.Start.Format(time.RFC3339),
		End:      e.End.Format(time.RFC3339),
		AllDay:   e.AllDay,
		Location: e.Location,
		Notes:    e.Notes,
		URL:      e.URL,
		Calendar: e.CalendarTitle,
	}
}

// toReminderRecord converts a native reminder, recomposing the due
// components into an absolute instant in the local time zone.
func toReminderRecord(r eventkit.Reminder) ReminderRecord {
	rec := ReminderRecord{
		ReminderID: r.ID,
		Title:      r.Title,
		Notes:      r.Notes,
		Priority:   r.Priority,
		Completed:  r.Completed,
		List:       r.CalendarTitle,
	}
	if r.Due != nil && !r.Due.IsZero() {
		due := r.Due.Time(time.Local).Format(time.RFC3339)
		rec.DueDate = &due
	}
	return rec
}
