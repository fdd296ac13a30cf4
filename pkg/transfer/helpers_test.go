package transfer

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"treecopy/pkg/endpoint"
	"treecopy/pkg/logging"
	"treecopy/pkg/ui"
)

var errLocked = errors.New("file is locked by another process")

func slogDiscard() *slog.Logger {
	return logging.Discard().Logger
}

func newTestCopier(fsys endpoint.FileSystem) *Copier {
	return &Copier{FS: fsys, Logger: slogDiscard()}
}

// writeTree 以 "rel/path" -> 内容 的形式写入文件
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

// readTree 返回 root 下所有文件内容，目录以 "rel/" 为键、空字符串为值
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			out[rel+"/"] = ""
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		out[rel] = string(data)
		return nil
	})
	require.NoError(t, err)
	return out
}

func pattern(size int, seed byte) string {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	for i := 0; i < size; i++ {
		buf.WriteByte(seed + byte(i%251))
	}
	return buf.String()
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.Truef(t, errors.Is(err, fs.ErrNotExist), "%s should not exist, stat err=%v", path, err)
}

// recorder 收集进度快照
type recorder struct {
	events  []ui.CopyProgress
	onEvent func(n int, p ui.CopyProgress)
}

func (r *recorder) Update(p ui.CopyProgress) {
	r.events = append(r.events, p)
	if r.onEvent != nil {
		r.onEvent(len(r.events), p)
	}
}

func (r *recorder) last() ui.CopyProgress {
	if len(r.events) == 0 {
		return ui.CopyProgress{}
	}
	return r.events[len(r.events)-1]
}

// faultFS 按文件名注入故障
type faultFS struct {
	endpoint.FileSystem
	failCreate map[string]error
	failRemove error
}

func (f *faultFS) Create(name string, perm fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	if err, ok := f.failCreate[filepath.Base(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.FileSystem.Create(name, perm, overwrite)
}

func (f *faultFS) Remove(name string) error {
	if f.failRemove != nil {
		return f.failRemove
	}
	return f.FileSystem.Remove(name)
}
