package endpoint

import (
	"io"
	"io/fs"
)

// FileSystem 抽象化的文件系统能力，所有路径均为完整路径
type FileSystem interface {
	Stat(name string) (FileMeta, error)
	ReadDir(name string) ([]FileMeta, error)
	Open(name string) (io.ReadCloser, error)
	// Create 创建目标文件；overwrite 为 false 且文件已存在时返回 fs.ErrExist
	Create(name string, perm fs.FileMode, overwrite bool) (io.WriteCloser, error)
	Mkdir(name string, perm fs.FileMode) error
	Remove(name string) error
	RemoveAll(name string) error
	Rename(oldName, newName string) error
	// CountFiles 递归统计 root 下普通文件数量
	CountFiles(root string, excludes []string) (int, error)
	Close() error
}
