// Package authz converts the host's asynchronous, permission-gated
// authorization workflow into blocking, timeout-bounded calls.
//
// The host answers a grant request through a callback that may fire on
// another thread, fire late, or never fire at all. The Broker bridges
// that to a synchronous Ensure call with a single-slot future and a
// bounded wait, and records the per-capability outcome for the rest of
// the process: once a capability is denied (explicitly or by timeout)
// the host is never asked again.
package authz
