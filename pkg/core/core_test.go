package core

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treecopy/pkg/endpoint"
	"treecopy/pkg/transfer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunTransactionalWithProgress(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dest")
	writeFile(t, filepath.Join(src, "a.txt"), "hello")
	writeFile(t, filepath.Join(src, "sub", "b.txt"), "world")
	logFile := filepath.Join(t.TempDir(), "copy.log")

	out := &bytes.Buffer{}
	cfg := &CopyConfig{
		Source:  endpoint.Endpoint{Path: src},
		Dest:    endpoint.Endpoint{Path: dst},
		Mode:    transfer.ModeTransactional,
		LogFile: logFile,
	}
	res, err := Run(context.Background(), cfg, out)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Files)

	data, err := os.ReadFile(filepath.Join(dst, "sub", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(data))

	logData, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logData), "全部完成")
	assert.Contains(t, out.String(), "2/2")
}

func TestRunPlainNoProgress(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dest")
	writeFile(t, filepath.Join(src, "a.txt"), "hello")

	out := &bytes.Buffer{}
	cfg := &CopyConfig{
		Source:     endpoint.Endpoint{Path: src},
		Dest:       endpoint.Endpoint{Path: dst},
		Mode:       transfer.ModePlain,
		NoProgress: true,
	}
	_, err := Run(context.Background(), cfg, out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "全部完成")
}

func TestRunReportsSourceNotFound(t *testing.T) {
	cfg := &CopyConfig{
		Source:     endpoint.Endpoint{Path: filepath.Join(t.TempDir(), "missing")},
		Dest:       endpoint.Endpoint{Path: filepath.Join(t.TempDir(), "dest")},
		Mode:       transfer.ModeTracked,
		NoProgress: true,
	}
	_, err := Run(context.Background(), cfg, &bytes.Buffer{})
	assert.ErrorIs(t, err, transfer.ErrSourceNotFound)
}

func TestRunCancelled(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "dest")
	writeFile(t, filepath.Join(src, "a.txt"), "hello")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := &CopyConfig{
		Source: endpoint.Endpoint{Path: src},
		Dest:   endpoint.Endpoint{Path: dst},
		Mode:   transfer.ModeTracked,
	}
	_, err := Run(ctx, cfg, &bytes.Buffer{})
	require.ErrorIs(t, err, transfer.ErrCancelled)
	_, statErr := os.Stat(dst)
	assert.True(t, os.IsNotExist(statErr))
}
