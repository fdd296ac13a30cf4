package endpoint

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrRemoteUnsupported 表示传入了 user@host:/path 形式的远端路径
var ErrRemoteUnsupported = errors.New("不支持远端路径")

// Endpoint 表示复制操作中的一端
type Endpoint struct {
	Path string
}

var remotePattern = regexp.MustCompile(`^([a-zA-Z0-9_\-\.]+@)?[^:/\\]{2,}:.+`)

// ParseEndpoint 解析 CLI 传入的路径并转换为绝对路径
func ParseEndpoint(raw string) (Endpoint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Endpoint{}, errors.New("空路径")
	}
	if remotePattern.MatchString(raw) {
		return Endpoint{}, fmt.Errorf("%w: %s", ErrRemoteUnsupported, raw)
	}
	abs, err := filepath.Abs(raw)
	if err != nil {
		return Endpoint{}, fmt.Errorf("解析路径失败 %s: %w", raw, err)
	}
	return Endpoint{Path: abs}, nil
}

// Contains 判断 other 是否位于 e 之内（含自身）
func (e Endpoint) Contains(other Endpoint) bool {
	rel, err := filepath.Rel(e.Path, other.Path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// DisplayName 返回用于日志/进度显示的端点名
func (e Endpoint) DisplayName() string {
	return e.Path
}
