package notes

import (
	"strings"

	"github.com/teemow/macbridge/internal/errs"
)

// Escape makes a caller-supplied string safe for interpolation inside a
// double-quoted AppleScript literal. Backslashes are doubled before
// quotes are escaped, so quotes produced by the first pass are not
// escaped twice.
func Escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// checkScriptSafe rejects values Escape cannot neutralize. AppleScript
// string literals cannot span lines, so a line break would terminate
// the literal regardless of quote escaping.
func checkScriptSafe(op, field, value string) error {
	if strings.ContainsAny(value, "\n\r") {
		return errs.Newf(errs.KindInjectionRejected, op,
			"%s must not contain line breaks", field)
	}
	return nil
}
