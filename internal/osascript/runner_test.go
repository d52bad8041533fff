package osascript

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/macbridge/internal/errs"
)

func TestNewCommandRunnerMissingBinary(t *testing.T) {
	_, err := NewCommandRunner(WithPath("definitely-not-a-real-binary"))
	require.Error(t, err)
	assert.Equal(t, errs.KindNativeFailure, errs.KindOf(err))
}

func TestRunEchoesOutput(t *testing.T) {
	if _, err := exec.LookPath("osascript"); err != nil {
		t.Skip("osascript not available")
	}

	r, err := NewCommandRunner()
	require.NoError(t, err)

	out, err := r.Run(context.Background(), `return "hello"`)
	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestRunTimeout(t *testing.T) {
	if _, err := exec.LookPath("osascript"); err != nil {
		t.Skip("osascript not available")
	}

	r, err := NewCommandRunner(WithTimeout(100 * time.Millisecond))
	require.NoError(t, err)

	_, err = r.Run(context.Background(), `delay 5`)
	require.Error(t, err)
	assert.Equal(t, errs.KindTimeout, errs.KindOf(err))
}

func TestRunScriptError(t *testing.T) {
	if _, err := exec.LookPath("osascript"); err != nil {
		t.Skip("osascript not available")
	}

	r, err := NewCommandRunner()
	require.NoError(t, err)

	_, err = r.Run(context.Background(), `error "boom"`)
	require.Error(t, err)
	assert.Equal(t, errs.KindNativeFailure, errs.KindOf(err))
}
