package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestAttributeHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger = WithService(logger, "notes")
	logger = WithOperation(logger, "search")
	logger.Info("done", Status(StatusSuccess), Account("iCloud"))

	out := buf.String()
	for _, want := range []string{"service=notes", "operation=search", "status=success", "account=iCloud"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q: %s", want, out)
		}
	}
}

func TestErrNil(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("ok", Err(nil))
	if strings.Contains(buf.String(), "error=") {
		t.Errorf("nil error should be omitted: %s", buf.String())
	}

	buf.Reset()
	logger.Info("bad", Err(errors.New("boom")))
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("error attribute missing: %s", buf.String())
	}
}
