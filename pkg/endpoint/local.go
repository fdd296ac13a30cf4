package endpoint

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// LocalFS 实现 FileSystem 接口，用于本地文件系统
type LocalFS struct{}

// NewLocalFS 创建一个 LocalFS
func NewLocalFS() *LocalFS {
	return &LocalFS{}
}

func (l *LocalFS) Stat(name string) (FileMeta, error) {
	info, err := os.Stat(name)
	if err != nil {
		return FileMeta{}, err
	}
	return metaFromInfo(info), nil
}

func (l *LocalFS) ReadDir(name string) ([]FileMeta, error) {
	entries, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}
	metas := make([]FileMeta, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// 枚举与 stat 之间被删除
			if IsNotFound(err) {
				continue
			}
			return nil, err
		}
		metas = append(metas, metaFromInfo(info))
	}
	return metas, nil
}

func (l *LocalFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (l *LocalFS) Create(name string, perm fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	flag := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if !overwrite {
		flag = os.O_CREATE | os.O_WRONLY | os.O_EXCL
	}
	return os.OpenFile(name, flag, perm)
}

func (l *LocalFS) Mkdir(name string, perm fs.FileMode) error {
	return os.Mkdir(name, perm)
}

func (l *LocalFS) Remove(name string) error {
	return os.Remove(name)
}

func (l *LocalFS) RemoveAll(name string) error {
	return os.RemoveAll(name)
}

func (l *LocalFS) Rename(oldName, newName string) error {
	return os.Rename(oldName, newName)
}

// CountFiles 使用 fastwalk 并行遍历，回调可能并发执行
func (l *LocalFS) CountFiles(root string, excludes []string) (int, error) {
	var count atomic.Int64
	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if ShouldExclude(rel, excludes) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			count.Add(1)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int(count.Load()), nil
}

func (l *LocalFS) Close() error {
	return nil
}
