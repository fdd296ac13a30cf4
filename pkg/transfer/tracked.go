package transfer

import (
	"context"
	"errors"

	"treecopy/pkg/ui"
)

// CopyTracked 顺序复制并按分块上报进度。取消时删除整个目标根目录后返回 CancelledError，
// 因此目标目录不应预先存在无关内容。
func (c *Copier) CopyTracked(ctx context.Context, src, dst string, sink ui.Sink, overwrite bool) (Result, error) {
	w := c.newWalker(ctx, ModeTracked, src, overwrite)
	if err := w.checkpoint(); err != nil {
		return Result{}, err
	}
	total, err := c.CountFiles(src)
	if err != nil {
		w.logger.Error("统计源文件失败", "src", src, "err", err)
		return Result{}, err
	}
	// 尚未产生任何副作用，直接返回
	if err := w.checkpoint(); err != nil {
		return Result{}, err
	}
	w.tracker = newTracker(total, sink)
	w.logger.Info("开始复制", "src", src, "dst", dst, "files", total)

	if err := w.walkDir(src, dst); err != nil {
		if errors.Is(err, ErrCancelled) {
			w.logger.Warn("复制已取消，清理目标目录", "dst", dst)
			if rmErr := c.FS.RemoveAll(dst); rmErr != nil {
				w.logger.Warn("清理目标目录失败", "dst", dst, "err", rmErr)
			}
			return Result{}, err
		}
		w.logger.Error("复制失败", "err", err)
		return w.result(), err
	}
	w.tracker.finish()
	res := w.result()
	w.logger.Info("复制完成", "files", res.Files, "dirs", res.Dirs, "bytes", res.Bytes)
	return res, nil
}
