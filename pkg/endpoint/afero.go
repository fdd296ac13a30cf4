package endpoint

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// AferoFS 将 afero.Fs 适配为 FileSystem，常用于内存文件系统
type AferoFS struct {
	fs afero.Fs
}

// NewAferoFS 创建 AferoFS
func NewAferoFS(fsys afero.Fs) *AferoFS {
	return &AferoFS{fs: fsys}
}

// NewMemFS 创建基于内存的 FileSystem
func NewMemFS() *AferoFS {
	return NewAferoFS(afero.NewMemMapFs())
}

func (a *AferoFS) Stat(name string) (FileMeta, error) {
	info, err := a.fs.Stat(name)
	if err != nil {
		return FileMeta{}, err
	}
	return metaFromInfo(info), nil
}

func (a *AferoFS) ReadDir(name string) ([]FileMeta, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	metas := make([]FileMeta, 0, len(infos))
	for _, info := range infos {
		metas = append(metas, metaFromInfo(info))
	}
	return metas, nil
}

func (a *AferoFS) Open(name string) (io.ReadCloser, error) {
	return a.fs.Open(name)
}

func (a *AferoFS) Create(name string, perm fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	if !overwrite {
		if _, err := a.fs.Stat(name); err == nil {
			return nil, &fs.PathError{Op: "create", Path: name, Err: fs.ErrExist}
		}
		return a.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_EXCL, perm)
	}
	return a.fs.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
}

func (a *AferoFS) Mkdir(name string, perm fs.FileMode) error {
	return a.fs.Mkdir(name, perm)
}

func (a *AferoFS) Remove(name string) error {
	return a.fs.Remove(name)
}

func (a *AferoFS) RemoveAll(name string) error {
	return a.fs.RemoveAll(name)
}

func (a *AferoFS) Rename(oldName, newName string) error {
	return a.fs.Rename(oldName, newName)
}

func (a *AferoFS) CountFiles(root string, excludes []string) (int, error) {
	count := 0
	err := afero.Walk(a.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if ShouldExclude(rel, excludes) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (a *AferoFS) Close() error {
	return nil
}
