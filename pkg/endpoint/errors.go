package endpoint

import (
	"errors"
	"io/fs"
)

// IsNotFound 判断错误是否表示路径不存在
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrNotExist)
}

// IsExist 判断错误是否表示路径已存在
func IsExist(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, fs.ErrExist)
}
