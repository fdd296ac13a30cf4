package transfer

import (
	"context"

	"treecopy/pkg/ui"
)

// CopyTransactional 记录本次创建的每个目录与文件，任何失败（含取消）都会按记录回滚，
// 然后返回触发回滚的原始错误。overwrite 时原文件会先移到旁边，回滚时恢复。
func (c *Copier) CopyTransactional(ctx context.Context, src, dst string, sink ui.Sink, overwrite bool) (Result, error) {
	w := c.newWalker(ctx, ModeTransactional, src, overwrite)
	if err := w.checkpoint(); err != nil {
		return Result{}, err
	}
	total, err := c.CountFiles(src)
	if err != nil {
		w.logger.Error("统计源文件失败", "src", src, "err", err)
		return Result{}, err
	}
	w.tracker = newTracker(total, sink)
	w.ledger = &ledger{}
	w.logger.Info("开始事务复制", "src", src, "dst", dst, "files", total)

	if err := w.walkDir(src, dst); err != nil {
		w.logger.Warn("复制失败，开始回滚", "err", err, "files", len(w.ledger.files), "dirs", len(w.ledger.dirs))
		w.ledger.rollback(c.FS, w.logger)
		return Result{}, err
	}
	w.ledger.commit(c.FS, w.logger)
	w.tracker.finish()
	res := w.result()
	w.logger.Info("事务复制完成", "files", res.Files, "dirs", res.Dirs, "bytes", res.Bytes)
	return res, nil
}
