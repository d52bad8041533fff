package scope

import (
	"context"

	"github.com/teemow/macbridge/internal/errs"
)

// Kind selects which store hierarchy a selector resolves against.
type Kind string

const (
	Events    Kind = "events"
	Reminders Kind = "reminders"
	Notes     Kind = "notes"
)

// containerNoun is the user-facing name for a container of the given
// kind, used in ScopeNotFound messages.
func containerNoun(kind Kind) string {
	switch kind {
	case Events:
		return "Calendar"
	case Reminders:
		return "Reminder list"
	}
	return "Folder"
}

// Selector is the caller-supplied, possibly ambiguous scope: an optional
// account name and an optional container (folder or calendar) name.
type Selector struct {
	Account   string
	Container string
}

// Handle is a resolved account+container pair. ID carries the store's
// own identifier for the container when the store has one (calendar
// stores do, the notes store does not).
type Handle struct {
	Account   string
	Container string
	ID        string
}

// Lister enumerates every container of every account visible for a
// kind, in host enumeration order, in a single store round-trip.
type Lister interface {
	Containers(ctx context.Context, kind Kind) ([]Handle, error)
}

// Resolve narrows the store hierarchy to the handles matching the
// selector. Matching is exact and case-sensitive; no fuzzy matching. An
// empty selector returns every container of every account, in
// enumeration order — that order decides which account wins when an
// unscoped item lookup cascades across handles.
//
// Resolve never merges or deduplicates handles. Callers searching for an
// item stop at the first handle that yields a match; callers listing a
// scope visit every handle.
func Resolve(ctx context.Context, l Lister, kind Kind, sel Selector) ([]Handle, error) {
	all, err := l.Containers(ctx, kind)
	if err != nil {
		return nil, err
	}

	handles := all
	if sel.Account != "" {
		var filtered []Handle
		for _, h := range handles {
			if h.Account == sel.Account {
				filtered = append(filtered, h)
			}
		}
		if len(filtered) == 0 {
			return nil, errs.Newf(errs.KindScopeNotFound, "resolve",
				"Account '%s' not found", sel.Account)
		}
		handles = filtered
	}

	if sel.Container != "" {
		var filtered []Handle
		for _, h := range handles {
			if h.Container == sel.Container {
				filtered = append(filtered, h)
			}
		}
		if len(filtered) == 0 {
			return nil, errs.Newf(errs.KindScopeNotFound, "resolve",
				"%s '%s' not found", containerNoun(kind), sel.Container)
		}
		handles = filtered
	}

	return handles, nil
}
