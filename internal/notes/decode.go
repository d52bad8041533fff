package notes

import (
	"strings"

	"github.com/teemow/macbridge/internal/errs"
)

const (
	errorSentinel = "ERROR:"

	// recordSep separates the hierarchical components of a record line
	// (account from title, account from folder). A title containing the
	// separator itself is ambiguous; the first occurrence wins.
	recordSep = " > "
)

// sentinelErr decodes the in-band failure channel of the automation
// surface. The sentinel is the only way a script reports a
// request-level failure, so it must be checked before any success
// parsing. The full line, prefix included, becomes the error message.
func sentinelErr(op, out string) error {
	if strings.HasPrefix(out, errorSentinel) {
		return errs.New(errs.KindNativeFailure, op, out)
	}
	return nil
}

// decodeLines splits a list-producing script's output into one record
// per line, trimming whitespace and dropping empty lines.
func decodeLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitRecord splits an "account > rest" record line at the first
// separator.
func splitRecord(line string) (account, rest string, ok bool) {
	i := strings.Index(line, recordSep)
	if i < 0 {
		return "", "", false
	}
	return line[:i], line[i+len(recordSep):], true
}
