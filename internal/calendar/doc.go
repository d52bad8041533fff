// Package calendar provides access to calendar events and reminders
// through the capability-gated event store. Queries are built from
// typed predicates only; container names resolve to store identifiers
// through the scope resolver, with the first matching container winning
// when names collide across accounts.
package calendar
