package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"treecopy/pkg/endpoint"
	"treecopy/pkg/logging"
	"treecopy/pkg/ui"
)

// DefaultChunkSize 为分块复制时每次读写的字节数
const DefaultChunkSize = 80 * 1024

// Mode 定义复制模式
type Mode string

const (
	ModePlain         Mode = "plain"
	ModeConcurrent    Mode = "concurrent"
	ModeTracked       Mode = "tracked"
	ModeTransactional Mode = "transactional"
)

// ParseMode 解析模式字符串
func ParseMode(val string) (Mode, error) {
	switch Mode(val) {
	case ModePlain, ModeConcurrent, ModeTracked, ModeTransactional:
		return Mode(val), nil
	default:
		return "", fmt.Errorf("未知复制模式: %q", val)
	}
}

// Copier 负责把源目录树复制到目标路径
type Copier struct {
	FS        endpoint.FileSystem
	Logger    *slog.Logger
	ChunkSize int
	Excludes  []string
}

// Result 描述一次复制的结果
type Result struct {
	Files   int
	Dirs    int
	Bytes   int64
	Skipped int
}

// Run 按模式分发
func (c *Copier) Run(ctx context.Context, mode Mode, src, dst string, sink ui.Sink, overwrite bool) (Result, error) {
	switch mode {
	case ModePlain:
		return c.Copy(ctx, src, dst, overwrite)
	case ModeConcurrent:
		return c.CopyConcurrent(ctx, src, dst, overwrite)
	case ModeTracked:
		return c.CopyTracked(ctx, src, dst, sink, overwrite)
	case ModeTransactional:
		return c.CopyTransactional(ctx, src, dst, sink, overwrite)
	default:
		return Result{}, fmt.Errorf("未知复制模式: %q", mode)
	}
}

// Copy 同步深度优先复制，不统计进度
func (c *Copier) Copy(ctx context.Context, src, dst string, overwrite bool) (Result, error) {
	w := c.newWalker(ctx, ModePlain, src, overwrite)
	w.logger.Info("开始复制", "src", src, "dst", dst)
	if err := w.walkDir(src, dst); err != nil {
		w.logger.Error("复制失败", "err", err)
		return w.result(), err
	}
	res := w.result()
	w.logger.Info("复制完成", "files", res.Files, "dirs", res.Dirs, "bytes", res.Bytes)
	return res, nil
}

// CountFiles 统计源目录下的普通文件数量，源不存在时返回 SourceNotFoundError
func (c *Copier) CountFiles(src string) (int, error) {
	if err := c.checkSource(src); err != nil {
		return 0, err
	}
	count, err := c.FS.CountFiles(src, c.Excludes)
	if err != nil {
		return 0, ioErr("count", src, err)
	}
	return count, nil
}

func (c *Copier) checkSource(src string) error {
	meta, err := c.FS.Stat(src)
	if err != nil {
		if endpoint.IsNotFound(err) {
			return &SourceNotFoundError{Path: src}
		}
		return ioErr("stat", src, err)
	}
	if !meta.IsDir {
		return ioErr("stat", src, ErrNotDirectory)
	}
	return nil
}

func (c *Copier) chunkSize() int {
	if c.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return c.ChunkSize
}

func (c *Copier) logger() *slog.Logger {
	if c.Logger == nil {
		return logging.Discard().Logger
	}
	return c.Logger
}

func (c *Copier) opLogger(mode Mode) *slog.Logger {
	return c.logger().With("op", uuid.NewString()[:8], "mode", string(mode))
}

func sinkOrNoop(sink ui.Sink) ui.Sink {
	if sink == nil {
		return ui.NoopSink{}
	}
	return sink
}
