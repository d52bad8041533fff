package notes

import (
	"strings"
	"testing"

	"github.com/teemow/macbridge/internal/errs"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"quote", `say "hi"`, `say \"hi\"`},
		{"backslash", `a\b`, `a\\b`},
		{"mixed", `a"b\c`, `a\"b\\c`},
		{"backslash then quote", `\"`, `\\\"`},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// Every double quote in the escaped form must be preceded by a
// backslash that is itself not escaped away, so the enclosing quoted
// literal can never close early.
func TestEscapeNeverTerminatesLiteral(t *testing.T) {
	inputs := []string{
		`a"b\c`,
		`\\\"`,
		`"""`,
		`\\\\`,
		`end" & do shell script "rm -rf ~" & "`,
	}
	for _, in := range inputs {
		escaped := Escape(in)
		backslashes := 0
		for _, r := range escaped {
			switch r {
			case '\\':
				backslashes++
			case '"':
				if backslashes%2 == 0 {
					t.Errorf("Escape(%q) = %q leaves an unescaped quote", in, escaped)
				}
				backslashes = 0
			default:
				backslashes = 0
			}
		}
	}
}

func TestCheckScriptSafe(t *testing.T) {
	if err := checkScriptSafe("create", "title", "fine title"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := checkScriptSafe("create", "body", "line one\nline two")
	if err == nil {
		t.Fatal("expected error for embedded newline")
	}
	if errs.KindOf(err) != errs.KindInjectionRejected {
		t.Errorf("kind = %v, want injection_rejected", errs.KindOf(err))
	}
	if err := checkScriptSafe("create", "body", "carriage\rreturn"); err == nil {
		t.Fatal("expected error for embedded carriage return")
	}
}

func TestScriptQuotingWithHostileTitle(t *testing.T) {
	script := readNoteInAccountScript("iCloud", `say "hi"`, false)
	if !strings.Contains(script, `whose name is "say \"hi\""`) {
		t.Errorf("escaped title not embedded intact:\n%s", script)
	}
}
