package errs

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "message wins over wrapped error",
			err:  &Error{ErrKind: KindItemNotFound, Op: "delete-event", Msg: "Event 'abc' not found", Err: errors.New("internal")},
			want: "Event 'abc' not found",
		},
		{
			name: "wrapped error with op",
			err:  &Error{ErrKind: KindNativeFailure, Op: "save", Err: errors.New("store rejected write")},
			want: "save: store rejected write",
		},
		{
			name: "kind only",
			err:  &Error{ErrKind: KindTimeout},
			want: "timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	err := Newf(KindScopeNotFound, "resolve", "Calendar '%s' not found", "Work")
	if KindOf(err) != KindScopeNotFound {
		t.Errorf("KindOf() = %v, want %v", KindOf(err), KindScopeNotFound)
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if KindOf(wrapped) != KindScopeNotFound {
		t.Errorf("KindOf(wrapped) = %v, want %v", KindOf(wrapped), KindScopeNotFound)
	}

	if KindOf(errors.New("plain")) != KindNativeFailure {
		t.Errorf("KindOf(plain) = %v, want %v", KindOf(errors.New("plain")), KindNativeFailure)
	}
}

func TestIs(t *testing.T) {
	err := New(KindPermissionDenied, "ensure", "Calendar access not granted")
	if !Is(err, KindPermissionDenied) {
		t.Error("Is() = false, want true")
	}
	if Is(err, KindTimeout) {
		t.Error("Is() with wrong kind = true, want false")
	}

	if got := errors.Unwrap(Wrap(KindNativeFailure, "save", errors.New("boom"))); got == nil {
		t.Error("Unwrap() = nil, want wrapped error")
	}
}
