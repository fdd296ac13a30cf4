package transfer

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// CopyConcurrent 与 Copy 遍历顺序相同，但同层文件并发复制、同层子目录并发递归。
// 各分支结束后才汇总错误，返回 AggregateError。
func (c *Copier) CopyConcurrent(ctx context.Context, src, dst string, overwrite bool) (Result, error) {
	w := c.newWalker(ctx, ModeConcurrent, src, overwrite)
	w.logger.Info("开始并发复制", "src", src, "dst", dst)
	// 顶层源目录缺失直接返回，不包装为 AggregateError
	if err := c.checkSource(src); err != nil {
		w.logger.Error("复制失败", "err", err)
		return Result{}, err
	}
	if err := w.walkDirConcurrent(src, dst); err != nil {
		w.logger.Error("复制失败", "err", err)
		return w.result(), err
	}
	res := w.result()
	w.logger.Info("复制完成", "files", res.Files, "dirs", res.Dirs, "bytes", res.Bytes)
	return res, nil
}

func (w *walker) walkDirConcurrent(src, dst string) error {
	files, dirs, err := w.prepareDir(src, dst)
	if err != nil {
		return err
	}
	var errs errorList

	var fileGroup errgroup.Group
	for _, f := range files {
		fileGroup.Go(func() error {
			if err := w.checkpoint(); err != nil {
				errs.add(err)
				return nil
			}
			errs.add(w.copyFile(filepath.Join(src, f.Name), filepath.Join(dst, f.Name), f))
			return nil
		})
	}
	// 分支始终返回 nil，错误统一由 errs 汇总
	fileGroup.Wait()

	var dirGroup errgroup.Group
	for _, d := range dirs {
		dirGroup.Go(func() error {
			if err := w.checkpoint(); err != nil {
				errs.add(err)
				return nil
			}
			errs.add(w.walkDirConcurrent(filepath.Join(src, d.Name), filepath.Join(dst, d.Name)))
			return nil
		})
	}
	dirGroup.Wait()

	return errs.err()
}

type errorList struct {
	mu   sync.Mutex
	errs []error
}

func (l *errorList) add(err error) {
	if err == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	var agg *AggregateError
	if errors.As(err, &agg) {
		l.errs = append(l.errs, agg.Errors...)
	} else {
		l.errs = append(l.errs, err)
	}
}

func (l *errorList) err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.errs) == 0 {
		return nil
	}
	return &AggregateError{Errors: append([]error(nil), l.errs...)}
}
