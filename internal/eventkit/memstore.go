package eventkit

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store. It backs tests and, via
// MACBRIDGE_STORE=memory, development on hosts without the native
// framework. Authorization is always granted; broker behavior against
// reluctant hosts is covered by the authz package's own fakes.
type MemStore struct {
	mu        sync.Mutex
	calendars map[EntityType][]Calendar
	defaults  map[EntityType]string
	events    []*Event
	reminders []*Reminder
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		calendars: make(map[EntityType][]Calendar),
		defaults:  make(map[EntityType]string),
	}
}

// AddCalendar registers a container, assigning an ID when the caller
// supplies none. The first calendar added for an entity type becomes
// the default.
func (s *MemStore) AddCalendar(entity EntityType, cal Calendar) Calendar {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cal.ID == "" {
		cal.ID = uuid.NewString()
	}
	if cal.Source == "" {
		cal.Source = "Local"
	}
	cal.AllowsModifications = true
	s.calendars[entity] = append(s.calendars[entity], cal)
	if _, ok := s.defaults[entity]; !ok {
		s.defaults[entity] = cal.ID
	}
	return cal
}

// SetDefaultCalendar overrides the default container for an entity type.
func (s *MemStore) SetDefaultCalendar(entity EntityType, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[entity] = id
}

func (s *MemStore) AuthorizationStatus(entity EntityType) AuthStatus {
	return AuthAuthorized
}

func (s *MemStore) RequestAccess(entity EntityType, fn func(granted bool, err error)) {
	fn(true, nil)
}

func (s *MemStore) Calendars(entity EntityType) ([]Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Calendar, len(s.calendars[entity]))
	copy(out, s.calendars[entity])
	return out, nil
}

func (s *MemStore) DefaultCalendar(entity EntityType) (Calendar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.defaults[entity]
	if !ok {
		return Calendar{}, fmt.Errorf("no default calendar for entity type %d", entity)
	}
	cal, err := s.calendarByIDLocked(entity, id)
	if err != nil {
		return Calendar{}, err
	}
	return cal, nil
}

func (s *MemStore) calendarByIDLocked(entity EntityType, id string) (Calendar, error) {
	for _, cal := range s.calendars[entity] {
		if cal.ID == id {
			return cal, nil
		}
	}
	return Calendar{}, fmt.Errorf("calendar %q not in store", id)
}

func (s *MemStore) EventsMatching(p EventPredicate) ([]Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Event
	for _, e := range s.events {
		if !overlaps(e.Start, e.End, p.Start, p.End) {
			continue
		}
		if p.Calendars != nil && !contains(p.Calendars, e.CalendarID) {
			continue
		}
		out = append(out, *e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *MemStore) EventByID(id string) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemStore) SaveEvent(e *Event, span Span) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.CalendarID == "" {
		e.CalendarID = s.defaults[EntityEvent]
	}
	cal, err := s.calendarByIDLocked(EntityEvent, e.CalendarID)
	if err != nil {
		return err
	}
	e.CalendarTitle = cal.Title

	if e.ID == "" {
		e.ID = uuid.NewString()
		cp := *e
		s.events = append(s.events, &cp)
		return nil
	}
	for i, existing := range s.events {
		if existing.ID == e.ID {
			cp := *e
			s.events[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("event %q not in store", e.ID)
}

func (s *MemStore) RemoveEvent(e *Event, span Span) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.events {
		if existing.ID == e.ID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("event %q not in store", e.ID)
}

func (s *MemStore) RemindersMatching(ctx context.Context, p ReminderPredicate) ([]Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reminder
	for _, r := range s.reminders {
		if !p.IncludeCompleted && r.Completed {
			continue
		}
		if p.Calendars != nil && !contains(p.Calendars, r.CalendarID) {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (s *MemStore) ReminderByID(id string) (*Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reminders {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemStore) SaveReminder(r *Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.CalendarID == "" {
		r.CalendarID = s.defaults[EntityReminder]
	}
	cal, err := s.calendarByIDLocked(EntityReminder, r.CalendarID)
	if err != nil {
		return err
	}
	r.CalendarTitle = cal.Title

	if r.ID == "" {
		r.ID = uuid.NewString()
		cp := *r
		s.reminders = append(s.reminders, &cp)
		return nil
	}
	for i, existing := range s.reminders {
		if existing.ID == r.ID {
			cp := *r
			s.reminders[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("reminder %q not in store", r.ID)
}

func (s *MemStore) RemoveReminder(r *Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.reminders {
		if existing.ID == r.ID {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("reminder %q not in store", r.ID)
}

func overlaps(start, end, winStart, winEnd time.Time) bool {
	return start.Before(winEnd) && end.After(winStart)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
