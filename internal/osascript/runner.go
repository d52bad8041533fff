package osascript

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/teemow/macbridge/internal/errs"
	"github.com/teemow/macbridge/internal/logging"
)

// DefaultTimeout bounds a single script execution.
const DefaultTimeout = 30 * time.Second

// Runner executes an AppleScript source and returns its trimmed stdout.
// Implementations must treat the script as opaque; all quoting happens
// before it reaches the runner.
type Runner interface {
	Run(ctx context.Context, script string) (string, error)
}

// CommandRunner runs scripts through the osascript binary.
type CommandRunner struct {
	path    string
	timeout time.Duration
}

// Option configures a CommandRunner.
type Option func(*CommandRunner)

// WithPath overrides the osascript binary path.
func WithPath(path string) Option {
	return func(r *CommandRunner) {
		if path != "" {
			r.path = path
		}
	}
}

// WithTimeout overrides the per-script execution bound.
func WithTimeout(d time.Duration) Option {
	return func(r *CommandRunner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// NewCommandRunner verifies the osascript binary is reachable and
// returns a runner bound to it.
func NewCommandRunner(opts ...Option) (*CommandRunner, error) {
	r := &CommandRunner{
		path:    "osascript",
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	resolved, err := exec.LookPath(r.path)
	if err != nil {
		return nil, &errs.Error{
			ErrKind: errs.KindNativeFailure,
			Op:      "osascript.init",
			Msg:     fmt.Sprintf("osascript not found in PATH: %v", err),
			Err:     err,
		}
	}
	r.path = resolved

	return r, nil
}

// Run executes the script with `osascript -e` and returns trimmed
// stdout. A deadline overrun maps to a timeout error; any other
// non-zero exit surfaces stderr as a native failure.
func (r *CommandRunner) Run(ctx context.Context, script string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.path, "-e", script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		slog.Debug("script run", logging.Service("osascript"),
			slog.Duration(logging.KeyDuration, elapsed),
			logging.Status(logging.StatusError), logging.Err(ctx.Err()))
		return "", errs.New(errs.KindTimeout, "osascript.run",
			"AppleScript execution timed out")
	}
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		slog.Debug("script run", logging.Service("osascript"),
			slog.Duration(logging.KeyDuration, elapsed),
			logging.Status(logging.StatusError), logging.Err(err))
		return "", &errs.Error{
			ErrKind: errs.KindNativeFailure,
			Op:      "osascript.run",
			Msg:     msg,
			Err:     err,
		}
	}

	slog.Debug("script run", logging.Service("osascript"),
		slog.Duration(logging.KeyDuration, elapsed),
		logging.Status(logging.StatusSuccess))
	return strings.TrimSpace(stdout.String()), nil
}
