package authz

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/teemow/macbridge/internal/errs"
	"github.com/teemow/macbridge/internal/logging"
)

// DefaultTimeout bounds the wait for the host's grant callback. The host
// prompt is interactive; a user who never answers must not hang the
// process.
const DefaultTimeout = 30 * time.Second

// Capability is a named permission gate the host enforces
// independently. Only the event store capabilities pass through the
// broker; notes automation has no explicit grant step (the host
// prompts on the first automation call), so no capability exists for
// it.
type Capability string

const (
	// CapabilityCalendarEvents gates the calendar event store
	CapabilityCalendarEvents Capability = "calendar_events"

	// CapabilityReminders gates the reminder store
	CapabilityReminders Capability = "reminders"
)

// String returns the user-facing name of the capability.
func (c Capability) String() string {
	switch c {
	case CapabilityCalendarEvents:
		return "Calendar"
	case CapabilityReminders:
		return "Reminders"
	}
	return string(c)
}

// Status is the host-reported authorization state for one capability.
type Status int

const (
	StatusUndetermined Status = iota
	StatusDenied
	StatusGranted
)

// Host is the asynchronous authorization surface of the native store.
// RequestAccess must invoke fn exactly once, possibly from another
// thread; the broker tolerates fn never being invoked.
type Host interface {
	Status(c Capability) Status
	RequestAccess(c Capability, fn func(granted bool, err error))
}

// Broker converts the host's asynchronous grant workflow into a
// blocking, timeout-bounded call and owns the per-capability
// authorization state for the process lifetime. Construct one broker
// per process; tests construct a fresh one per case.
type Broker struct {
	host    Host
	timeout time.Duration

	mu    sync.Mutex
	state map[Capability]Status
}

// NewBroker returns a broker over the given host with the default
// grant-wait timeout.
func NewBroker(host Host) *Broker {
	return NewBrokerWithTimeout(host, DefaultTimeout)
}

// NewBrokerWithTimeout returns a broker with an explicit grant-wait
// timeout.
func NewBrokerWithTimeout(host Host, timeout time.Duration) *Broker {
	return &Broker{
		host:    host,
		timeout: timeout,
		state:   make(map[Capability]Status),
	}
}

// Ensure blocks until the capability is granted, denied, or the wait
// times out. A timeout is treated as denied: the host did not respond.
// Once denied, the capability stays denied for the remainder of the
// process; the host does not support re-prompting.
func (b *Broker) Ensure(c Capability) error {
	b.mu.Lock()
	st, ok := b.state[c]
	if !ok {
		st = b.host.Status(c)
		b.state[c] = st
	}
	b.mu.Unlock()

	switch st {
	case StatusGranted:
		return nil
	case StatusDenied:
		return denied(c)
	}

	// Single-slot future: the callback writes at most once, the waiter
	// reads at most once. A callback arriving after the timeout lands in
	// the buffer and is never read.
	done := make(chan bool, 1)
	b.host.RequestAccess(c, func(granted bool, err error) {
		select {
		case done <- granted && err == nil:
		default:
		}
	})

	timer := time.NewTimer(b.timeout)
	defer timer.Stop()

	var granted bool
	select {
	case granted = <-done:
	case <-timer.C:
		granted = false
	}

	b.mu.Lock()
	if granted {
		b.state[c] = StatusGranted
	} else {
		b.state[c] = StatusDenied
	}
	b.mu.Unlock()

	outcome := logging.StatusSuccess
	if !granted {
		outcome = logging.StatusError
	}
	slog.Debug("capability grant resolved", logging.Operation("authz.ensure"),
		slog.String("capability", c.String()), logging.Status(outcome))

	if !granted {
		return denied(c)
	}
	return nil
}

// State returns the broker's current view of the capability without
// touching the host.
func (b *Broker) State(c Capability) Status {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.state[c]
	if !ok {
		return StatusUndetermined
	}
	return st
}

func denied(c Capability) error {
	return errs.New(errs.KindPermissionDenied, "ensure",
		fmt.Sprintf("%s access not granted", c))
}
