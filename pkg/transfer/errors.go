package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound 源目录不存在
	ErrSourceNotFound = errors.New("源路径不存在")
	// ErrIO 底层读写、创建、删除失败
	ErrIO = errors.New("I/O 失败")
	// ErrCancelled 在检查点观察到取消
	ErrCancelled = errors.New("复制已取消")
	// ErrNotDirectory 期望目录但遇到了文件
	ErrNotDirectory = errors.New("不是目录")
)

// SourceNotFoundError 携带不存在的源路径
type SourceNotFoundError struct {
	Path string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("源路径不存在: %s", e.Path)
}

func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

// IOError 描述一次失败的文件系统操作
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// CancelledError 同时匹配 ErrCancelled 与触发取消的 context 错误
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string {
	if e.Cause == nil {
		return ErrCancelled.Error()
	}
	return fmt.Sprintf("%s: %v", ErrCancelled.Error(), e.Cause)
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}

func (e *CancelledError) Is(target error) bool {
	return target == ErrCancelled
}

// AggregateError 汇总并发模式下所有分支的失败
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d 个复制任务失败，首个错误: %v", len(e.Errors), e.Errors[0])
}

func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

func ioErr(op, path string, err error) error {
	return &IOError{Op: op, Path: path, Err: err}
}
