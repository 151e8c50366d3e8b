package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logOut = &buf
	t.Cleanup(func() {
		logOut = os.Stderr
		setLevel("info")
	})

	setLevel("quiet")
	assert.False(t, logLevel.Enabled(zapcore.InfoLevel))
	infof("hidden %d", 1)
	warnf("history not updated: %s", "locked")
	errorf("boom")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "history not updated: locked")
	assert.Contains(t, buf.String(), "boom")

	buf.Reset()
	setLevel("info")
	debugf("details")
	infof("Scanning %s...", "dir")
	assert.NotContains(t, buf.String(), "details")
	assert.Contains(t, buf.String(), "Scanning dir...")

	buf.Reset()
	setLevel("debug")
	debugf("config: constructor=%s", "QuantumCircuit")
	assert.Contains(t, buf.String(), "config: constructor=QuantumCircuit")
}

func TestSetLevel_UnknownFallsBackToInfo(t *testing.T) {
	t.Cleanup(func() { setLevel("info") })

	setLevel("verbose")
	assert.True(t, logLevel.Enabled(zapcore.InfoLevel))
	assert.False(t, logLevel.Enabled(zapcore.DebugLevel))
}

func TestScanProgress_CountsEveryUpdate(t *testing.T) {
	logOut = &bytes.Buffer{}
	t.Cleanup(func() {
		logOut = os.Stderr
		setLevel("info")
	})
	setLevel("info")

	p := &scanProgress{}
	// Workers report out of order.
	for _, processed := range []int{3, 1, 2} {
		p.update(processed, 3, "a.py")
	}

	assert.Equal(t, 1.0, p.bar.State().CurrentPercent)
}

func TestScanProgress_QuietHasNoBar(t *testing.T) {
	logOut = &bytes.Buffer{}
	t.Cleanup(func() {
		logOut = os.Stderr
		setLevel("info")
	})
	setLevel("quiet")

	p := &scanProgress{}
	p.update(1, 1, "a.py")

	assert.Nil(t, p.bar)
}
