package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFiltersConsoleByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, WARN)

	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	l.Errorf("also shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN] shown 2")
	assert.Contains(t, out, "[ERROR] also shown")
}

func TestLoggerFileGetsEveryLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "burrow.log")
	l, err := Open(path, ERROR)
	require.NoError(t, err)

	l.Tracef("trace line")
	l.Debugf("debug line")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[TRACE] trace line")
	assert.Contains(t, string(data), "[DEBUG] debug line")
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, DEBUG, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, INFO, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNilAndDiscardLoggersAreSafe(t *testing.T) {
	var l *Logger
	l.Warnf("nothing")
	assert.NoError(t, l.Close())
	Discard().Errorf("nothing either")
}
