// Package eventkit provides access to calendars, events and reminders
// through a backend-neutral Store interface.
//
// On macOS the store is backed by the system EventKit framework via a
// small cgo bridge. Everywhere else, and in tests, MemStore provides
// the same semantics in memory. Queries are expressed as typed
// predicates (EventPredicate, ReminderPredicate); no query path builds
// strings from caller input.
package eventkit
