package transfer

import (
	"log/slog"

	"treecopy/pkg/endpoint"
)

type backup struct {
	orig  string
	saved string
}

// ledger 记录一次事务复制中由本次调用创建的路径，按创建顺序排列
type ledger struct {
	files   []string
	dirs    []string
	backups []backup
}

func (l *ledger) recordFile(path string) {
	l.files = append(l.files, path)
}

func (l *ledger) recordDir(path string) {
	l.dirs = append(l.dirs, path)
}

func (l *ledger) recordBackup(orig, saved string) {
	l.backups = append(l.backups, backup{orig: orig, saved: saved})
}

// rollback 尽力撤销：先删文件，再恢复被覆盖的原文件，最后逆序删除目录。
// 删除失败只记录日志，不会中断回滚。
func (l *ledger) rollback(fsys endpoint.FileSystem, logger *slog.Logger) {
	for _, path := range l.files {
		if err := fsys.Remove(path); err != nil && !endpoint.IsNotFound(err) {
			logger.Warn("回滚删除文件失败", "path", path, "err", err)
		}
	}
	for i := len(l.backups) - 1; i >= 0; i-- {
		b := l.backups[i]
		if err := fsys.Rename(b.saved, b.orig); err != nil {
			logger.Warn("回滚恢复原文件失败", "path", b.orig, "backup", b.saved, "err", err)
		}
	}
	for i := len(l.dirs) - 1; i >= 0; i-- {
		if err := fsys.RemoveAll(l.dirs[i]); err != nil {
			logger.Warn("回滚删除目录失败", "path", l.dirs[i], "err", err)
		}
	}
	logger.Info("回滚完成", "files", len(l.files), "dirs", len(l.dirs), "restored", len(l.backups))
}

// commit 事务成功后删除覆盖前保存的原文件
func (l *ledger) commit(fsys endpoint.FileSystem, logger *slog.Logger) {
	for _, b := range l.backups {
		if err := fsys.Remove(b.saved); err != nil && !endpoint.IsNotFound(err) {
			logger.Warn("清理覆盖备份失败", "backup", b.saved, "err", err)
		}
	}
}
