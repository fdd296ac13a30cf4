package transfer

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"

	"treecopy/pkg/endpoint"
)

const dirPerm fs.FileMode = 0o755

// walker 保存一次调用的遍历状态；tracker 与 ledger 仅在顺序遍历中使用
type walker struct {
	ctx       context.Context
	fs        endpoint.FileSystem
	logger    *slog.Logger
	srcRoot   string
	excludes  []string
	overwrite bool
	chunkSize int

	tracker *tracker
	ledger  *ledger

	files   atomic.Int64
	dirs    atomic.Int64
	bytes   atomic.Int64
	skipped atomic.Int64
}

func (c *Copier) newWalker(ctx context.Context, mode Mode, src string, overwrite bool) *walker {
	return &walker{
		ctx:       ctx,
		fs:        c.FS,
		logger:    c.opLogger(mode),
		srcRoot:   src,
		excludes:  c.Excludes,
		overwrite: overwrite,
		chunkSize: c.chunkSize(),
	}
}

func (w *walker) result() Result {
	return Result{
		Files:   int(w.files.Load()),
		Dirs:    int(w.dirs.Load()),
		Bytes:   w.bytes.Load(),
		Skipped: int(w.skipped.Load()),
	}
}

// checkpoint 在约定位置观察取消信号
func (w *walker) checkpoint() error {
	if err := w.ctx.Err(); err != nil {
		return &CancelledError{Cause: err}
	}
	return nil
}

// walkDir 顺序复制：先复制本层文件，再逐个递归子目录
func (w *walker) walkDir(src, dst string) error {
	files, dirs, err := w.prepareDir(src, dst)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := w.checkpoint(); err != nil {
			return err
		}
		if err := w.copyFile(filepath.Join(src, f.Name), filepath.Join(dst, f.Name), f); err != nil {
			return err
		}
	}
	for _, d := range dirs {
		if err := w.checkpoint(); err != nil {
			return err
		}
		if err := w.walkDir(filepath.Join(src, d.Name), filepath.Join(dst, d.Name)); err != nil {
			return err
		}
	}
	return nil
}

// prepareDir 校验源目录、确保目标目录存在，并把目录项分为文件与子目录
func (w *walker) prepareDir(src, dst string) (files, dirs []endpoint.FileMeta, err error) {
	meta, err := w.fs.Stat(src)
	if err != nil {
		if endpoint.IsNotFound(err) {
			return nil, nil, &SourceNotFoundError{Path: src}
		}
		return nil, nil, ioErr("stat", src, err)
	}
	if !meta.IsDir {
		return nil, nil, ioErr("stat", src, ErrNotDirectory)
	}
	if err := w.ensureDir(dst); err != nil {
		return nil, nil, err
	}
	entries, err := w.fs.ReadDir(src)
	if err != nil {
		return nil, nil, ioErr("readdir", src, err)
	}
	for _, entry := range entries {
		full := filepath.Join(src, entry.Name)
		if w.excluded(full) {
			w.skipped.Add(1)
			w.logger.Debug("跳过排除项", "path", full)
			continue
		}
		switch {
		case entry.IsDir:
			dirs = append(dirs, entry)
		case entry.IsRegular():
			files = append(files, entry)
		default:
			w.skipped.Add(1)
			w.logger.Debug("跳过非普通文件", "path", full, "mode", entry.Mode.String())
		}
	}
	return files, dirs, nil
}

func (w *walker) excluded(full string) bool {
	if len(w.excludes) == 0 {
		return false
	}
	rel, err := filepath.Rel(w.srcRoot, full)
	if err != nil {
		return false
	}
	return endpoint.ShouldExclude(rel, w.excludes)
}

// ensureDir 创建缺失的目录（含缺失的上级目录），已存在的目录不记录
func (w *walker) ensureDir(dir string) error {
	meta, err := w.fs.Stat(dir)
	if err == nil {
		if !meta.IsDir {
			return ioErr("mkdir", dir, ErrNotDirectory)
		}
		return nil
	}
	if !endpoint.IsNotFound(err) {
		return ioErr("stat", dir, err)
	}
	if parent := filepath.Dir(dir); parent != dir {
		if err := w.ensureDir(parent); err != nil {
			return err
		}
	}
	if err := w.fs.Mkdir(dir, dirPerm); err != nil {
		if endpoint.IsExist(err) {
			return nil
		}
		return ioErr("mkdir", dir, err)
	}
	if w.ledger != nil {
		w.ledger.recordDir(dir)
	}
	w.dirs.Add(1)
	return nil
}

func (w *walker) copyFile(src, dst string, meta endpoint.FileMeta) error {
	reader, err := w.fs.Open(src)
	if err != nil {
		return ioErr("open", src, err)
	}
	defer reader.Close()

	overwrite := w.overwrite
	if w.ledger != nil && overwrite {
		if err := w.backupExisting(dst); err != nil {
			return err
		}
	}
	perm := meta.Mode.Perm()
	if perm == 0 {
		perm = 0o644
	}
	writer, err := w.fs.Create(dst, perm, overwrite)
	if err != nil {
		return ioErr("create", dst, err)
	}
	if w.ledger != nil {
		w.ledger.recordFile(dst)
	}

	var n int64
	if w.tracker != nil {
		w.tracker.startFile(src)
		n, err = w.copyChunked(reader, writer, src, dst, meta.Size)
	} else {
		n, err = io.Copy(writer, reader)
		if err != nil {
			err = ioErr("copy", dst, err)
		}
	}
	closeErr := writer.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return ioErr("close", dst, closeErr)
	}
	if w.tracker != nil {
		w.tracker.completeFile()
	}
	w.files.Add(1)
	w.bytes.Add(n)
	w.logger.Debug("文件复制完成", "path", dst, "size", n)
	return nil
}

// copyChunked 分块复制，每次读写前检查取消，每块写入后上报进度
func (w *walker) copyChunked(reader io.Reader, writer io.Writer, src, dst string, size int64) (int64, error) {
	buf := make([]byte, w.chunkSize)
	var copied int64
	for {
		if err := w.checkpoint(); err != nil {
			return copied, err
		}
		n, readErr := reader.Read(buf)
		if n > 0 {
			if err := w.checkpoint(); err != nil {
				return copied, err
			}
			if _, err := writer.Write(buf[:n]); err != nil {
				return copied, ioErr("write", dst, err)
			}
			copied += int64(n)
			w.tracker.advance(copied, size)
		}
		if readErr == io.EOF {
			return copied, nil
		}
		if readErr != nil {
			return copied, ioErr("read", src, readErr)
		}
	}
}

// backupExisting 覆盖前把原文件移到同目录的隐藏文件，回滚时可恢复
func (w *walker) backupExisting(dst string) error {
	meta, err := w.fs.Stat(dst)
	if err != nil {
		if endpoint.IsNotFound(err) {
			return nil
		}
		return ioErr("stat", dst, err)
	}
	if meta.IsDir {
		return ioErr("create", dst, fs.ErrExist)
	}
	saved := filepath.Join(filepath.Dir(dst), "."+filepath.Base(dst)+".treecopy-"+uuid.NewString())
	if err := w.fs.Rename(dst, saved); err != nil {
		return ioErr("backup", dst, err)
	}
	w.ledger.recordBackup(dst, saved)
	return nil
}
