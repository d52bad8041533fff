//go:build darwin && cgo

package eventkit

/*
#cgo CFLAGS: -x objective-c -fobjc-arc
#cgo LDFLAGS: -framework EventKit -framework Foundation
#include <stdlib.h>
#include "eventkit_darwin.h"
*/
import "C"

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/cgo"
	"time"
	"unsafe"

	"github.com/teemow/macbridge/internal/errs"
)

// darwinStore backs Store with the system EventKit framework. Record
// bridging is JSON over strdup'd C strings; dates cross the boundary as
// unix seconds. Completion-block callbacks route back through
// cgo.Handle so each pending request keeps its own channel.
type darwinStore struct{}

// NewStore returns the native event store.
func NewStore() (Store, error) {
	return &darwinStore{}, nil
}

type cEvent struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Start         float64 `json:"start"`
	End           float64 `json:"end"`
	AllDay        bool    `json:"allDay"`
	Location      string  `json:"location"`
	Notes         string  `json:"notes"`
	URL           string  `json:"url"`
	CalendarID    string  `json:"calendarId"`
	CalendarTitle string  `json:"calendarTitle"`
}

type cReminder struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Notes          string          `json:"notes"`
	Priority       int             `json:"priority"`
	Completed      bool            `json:"completed"`
	CompletionDate *float64        `json:"completionDate,omitempty"`
	Due            *DateComponents `json:"due,omitempty"`
	CalendarID     string          `json:"calendarId"`
	CalendarTitle  string          `json:"calendarTitle"`
}

func (c cEvent) toEvent() Event {
	return Event{
		ID:            c.ID,
		Title:         c.Title,
		Start:         time.Unix(int64(c.Start), 0),
		End:           time.Unix(int64(c.End), 0),
		AllDay:        c.AllDay,
		Location:      c.Location,
		Notes:         c.Notes,
		URL:           c.URL,
		CalendarID:    c.CalendarID,
		CalendarTitle: c.CalendarTitle,
	}
}

func fromEvent(e *Event) cEvent {
	return cEvent{
		ID:            e.ID,
		Title:         e.Title,
		Start:         float64(e.Start.Unix()),
		End:           float64(e.End.Unix()),
		AllDay:        e.AllDay,
		Location:      e.Location,
		Notes:         e.Notes,
		URL:           e.URL,
		CalendarID:    e.CalendarID,
		CalendarTitle: e.CalendarTitle,
	}
}

func (c cReminder) toReminder() Reminder {
	r := Reminder{
		ID:            c.ID,
		Title:         c.Title,
		Notes:         c.Notes,
		Priority:      c.Priority,
		Completed:     c.Completed,
		Due:           c.Due,
		CalendarID:    c.CalendarID,
		CalendarTitle: c.CalendarTitle,
	}
	if c.CompletionDate != nil {
		t := time.Unix(int64(*c.CompletionDate), 0)
		r.CompletionDate = &t
	}
	return r
}

func fromReminder(r *Reminder) cReminder {
	c := cReminder{
		ID:            r.ID,
		Title:         r.Title,
		Notes:         r.Notes,
		Priority:      r.Priority,
		Completed:     r.Completed,
		Due:           r.Due,
		CalendarID:    r.CalendarID,
		CalendarTitle: r.CalendarTitle,
	}
	if r.CompletionDate != nil {
		ts := float64(r.CompletionDate.Unix())
		c.CompletionDate = &ts
	}
	return c
}

// takeResult frees a strdup'd result/err pair and returns the Go copies.
func takeResult(res *C.char, cerr *C.char) (string, error) {
	var err error
	if cerr != nil {
		err = fmt.Errorf("%s", C.GoString(cerr))
		C.free(unsafe.Pointer(cerr))
	}
	if res == nil {
		return "", err
	}
	out := C.GoString(res)
	C.free(unsafe.Pointer(res))
	return out, err
}

// calendarIDsJSON encodes a predicate's calendar filter for the C side.
// nil means "all calendars" and crosses as NULL.
func calendarIDsJSON(ids []string) (*C.char, func()) {
	if ids == nil {
		return nil, func() {}
	}
	raw, _ := json.Marshal(ids)
	cs := C.CString(string(raw))
	return cs, func() { C.free(unsafe.Pointer(cs)) }
}

func (s *darwinStore) AuthorizationStatus(entity EntityType) AuthStatus {
	switch C.mb_auth_status(C.int(entity)) {
	case 0:
		return AuthNotDetermined
	case 1:
		return AuthDenied
	default:
		return AuthAuthorized
	}
}

//export goAccessDone
func goAccessDone(handle C.uintptr_t, granted C.int) {
	h := cgo.Handle(handle)
	fn := h.Value().(func(granted bool, err error))
	h.Delete()
	fn(granted == 1, nil)
}

func (s *darwinStore) RequestAccess(entity EntityType, fn func(granted bool, err error)) {
	h := cgo.NewHandle(fn)
	C.mb_request_access(C.int(entity), C.uintptr_t(h))
}

func (s *darwinStore) Calendars(entity EntityType) ([]Calendar, error) {
	var cerr *C.char
	raw, err := takeResult(C.mb_copy_calendars(C.int(entity), &cerr), cerr)
	if err != nil {
		return nil, err
	}
	var cals []Calendar
	if err := json.Unmarshal([]byte(raw), &cals); err != nil {
		return nil, err
	}
	return cals, nil
}

func (s *darwinStore) DefaultCalendar(entity EntityType) (Calendar, error) {
	var cerr *C.char
	raw, err := takeResult(C.mb_default_calendar(C.int(entity), &cerr), cerr)
	if err != nil {
		return Calendar{}, err
	}
	var cal Calendar
	if err := json.Unmarshal([]byte(raw), &cal); err != nil {
		return Calendar{}, err
	}
	return cal, nil
}

func (s *darwinStore) EventsMatching(p EventPredicate) ([]Event, error) {
	ids, free := calendarIDsJSON(p.Calendars)
	defer free()

	var cerr *C.char
	raw, err := takeResult(C.mb_events_matching(
		C.double(p.Start.Unix()), C.double(p.End.Unix()), ids, &cerr), cerr)
	if err != nil {
		return nil, err
	}
	var recs []cEvent
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		return nil, err
	}
	out := make([]Event, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toEvent())
	}
	return out, nil
}

func (s *darwinStore) EventByID(id string) (*Event, error) {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	var cerr *C.char
	raw, err := takeResult(C.mb_event_by_id(cid, &cerr), cerr)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var rec cEvent
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	e := rec.toEvent()
	return &e, nil
}

func (s *darwinStore) SaveEvent(e *Event, span Span) error {
	payload, err := json.Marshal(fromEvent(e))
	if err != nil {
		return err
	}
	cjson := C.CString(string(payload))
	defer C.free(unsafe.Pointer(cjson))

	var cerr *C.char
	raw, err := takeResult(C.mb_save_event(cjson, C.int(span), &cerr), cerr)
	if err != nil {
		return err
	}
	var saved cEvent
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return err
	}
	*e = saved.toEvent()
	return nil
}

func (s *darwinStore) RemoveEvent(e *Event, span Span) error {
	cid := C.CString(e.ID)
	defer C.free(unsafe.Pointer(cid))

	var cerr *C.char
	ok := C.mb_remove_event(cid, C.int(span), &cerr)
	_, err := takeResult(nil, cerr)
	if ok == 0 && err != nil {
		return err
	}
	return nil
}

type reminderFetch struct {
	reminders []Reminder
	err       error
}

//export goRemindersDone
func goRemindersDone(handle C.uintptr_t, jsonStr *C.char, errStr *C.char) {
	h := cgo.Handle(handle)
	ch := h.Value().(chan reminderFetch)
	h.Delete()

	var res reminderFetch
	if errStr != nil {
		res.err = fmt.Errorf("%s", C.GoString(errStr))
	} else {
		var recs []cReminder
		if err := json.Unmarshal([]byte(C.GoString(jsonStr)), &recs); err != nil {
			res.err = err
		} else {
			for _, rec := range recs {
				res.reminders = append(res.reminders, rec.toReminder())
			}
		}
	}
	select {
	case ch <- res:
	default:
	}
}

func (s *darwinStore) RemindersMatching(ctx context.Context, p ReminderPredicate) ([]Reminder, error) {
	ids, free := calendarIDsJSON(p.Calendars)
	defer free()

	includeCompleted := C.int(0)
	if p.IncludeCompleted {
		includeCompleted = 1
	}

	ch := make(chan reminderFetch, 1)
	h := cgo.NewHandle(ch)
	C.mb_fetch_reminders(ids, includeCompleted, C.uintptr_t(h))

	timer := time.NewTimer(30 * time.Second)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.reminders, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, errs.New(errs.KindTimeout, "eventkit.RemindersMatching",
			"timed out waiting for reminder fetch")
	}
}

func (s *darwinStore) ReminderByID(id string) (*Reminder, error) {
	cid := C.CString(id)
	defer C.free(unsafe.Pointer(cid))

	var cerr *C.char
	raw, err := takeResult(C.mb_reminder_by_id(cid, &cerr), cerr)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var rec cReminder
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, err
	}
	r := rec.toReminder()
	return &r, nil
}

func (s *darwinStore) SaveReminder(r *Reminder) error {
	payload, err := json.Marshal(fromReminder(r))
	if err != nil {
		return err
	}
	cjson := C.CString(string(payload))
	defer C.free(unsafe.Pointer(cjson))

	var cerr *C.char
	raw, err := takeResult(C.mb_save_reminder(cjson, &cerr), cerr)
	if err != nil {
		return err
	}
	var saved cReminder
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return err
	}
	*r = saved.toReminder()
	return nil
}

func (s *darwinStore) RemoveReminder(r *Reminder) error {
	cid := C.CString(r.ID)
	defer C.free(unsafe.Pointer(cid))

	var cerr *C.char
	ok := C.mb_remove_reminder(cid, &cerr)
	_, err := takeResult(nil, cerr)
	if ok == 0 && err != nil {
		return err
	}
	return nil
}
