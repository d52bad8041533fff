//go:build !darwin || !cgo

package eventkit

import "github.com/teemow/macbridge/internal/errs"

// NewStore returns the native event store. On hosts without the native
// framework the only available backend is MemStore.
func NewStore() (Store, error) {
	return nil, errs.New(errs.KindNativeFailure, "eventkit",
		"the native event store requires macOS; set MACBRIDGE_STORE=memory for development")
}
