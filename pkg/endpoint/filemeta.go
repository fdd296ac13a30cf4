package endpoint

import (
	"io/fs"
	"time"
)

// FileMeta 描述目录项元数据
type FileMeta struct {
	Name    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// IsRegular 是否为普通文件，符号链接与特殊文件均返回 false
func (m FileMeta) IsRegular() bool {
	return !m.IsDir && m.Mode.IsRegular()
}

func metaFromInfo(info fs.FileInfo) FileMeta {
	return FileMeta{
		Name:    info.Name(),
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}
}
