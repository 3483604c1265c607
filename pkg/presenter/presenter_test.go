package presenter

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestError(t *testing.T) {
	p, out, errOut := newTestPresenter()

	p.Error(errors.New("boom"), "Something failed")
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[ERROR] Something failed: boom")

	errOut.Reset()
	p.Error(errors.New("boom"), "")
	assert.Equal(t, "[ERROR] boom\n", errOut.String())

	errOut.Reset()
	p.Error(nil, "no error here")
	assert.Empty(t, errOut.String())
}

func TestMessages(t *testing.T) {
	p, out, _ := newTestPresenter()

	p.Success("done")
	p.Warning("careful")
	p.Info("fyi")
	p.Section("Results")

	got := out.String()
	assert.Contains(t, got, "✓ done")
	assert.Contains(t, got, "⚠ careful")
	assert.Contains(t, got, "fyi")
	assert.Contains(t, got, "=== Results ===")
}

func TestQuietMode(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)
	assert.True(t, p.IsQuiet())

	p.Success("done")
	p.Warning("careful")
	p.Info("fyi")
	p.Section("Results")
	assert.Empty(t, out.String())

	// Errors bypass quiet mode
	p.Error(errors.New("boom"), "still shown")
	assert.Contains(t, errOut.String(), "still shown")
}
