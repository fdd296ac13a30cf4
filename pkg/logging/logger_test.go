package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("debug", buf)
	require.NoError(t, err)
	logger.Debug("hello", "key", "value")
	require.NoError(t, logger.Close())
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "key=value")
}

func TestLoggerLevelFilters(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New("warn", buf)
	require.NoError(t, err)
	logger.Info("quiet")
	assert.Zero(t, buf.Len())
	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("dropped")
	assert.NoError(t, logger.Close())
}

func TestLoggerKeepsStandardStreamsOpen(t *testing.T) {
	logger, err := New("info", os.Stderr)
	require.NoError(t, err)
	require.NoError(t, logger.Close())
	_, err = os.Stderr.Stat()
	assert.NoError(t, err)
}

func TestLoggerClosesFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.log")
	file, err := os.Create(path)
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	logger, err := New("info", buf, file)
	require.NoError(t, err)
	logger.Info("written")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written")
	assert.Contains(t, buf.String(), "written")
}

func TestNewLoggerRequiresWriter(t *testing.T) {
	_, err := New("info")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("bogus"))
}
