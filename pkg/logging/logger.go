package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger 包装 slog.Logger，方便统一关闭资源
type Logger struct {
	*slog.Logger
	closers []io.Closer
}

// New 创建 Logger，输出到给定 writer；底层由 charmbracelet/log 负责格式化
func New(level string, writers ...io.Writer) (*Logger, error) {
	if len(writers) == 0 {
		return nil, fmt.Errorf("必须提供至少一个日志输出")
	}
	var closerList []io.Closer
	var output io.Writer
	if len(writers) == 1 {
		output = writers[0]
	} else {
		output = io.MultiWriter(writers...)
	}
	for _, w := range writers {
		if w == os.Stdout || w == os.Stderr {
			continue
		}
		if c, ok := w.(io.Closer); ok {
			closerList = append(closerList, c)
		}
	}
	handler := log.NewWithOptions(output, log.Options{
		Level:           ParseLevel(level),
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "treecopy",
	})
	return &Logger{
		Logger:  slog.New(handler),
		closers: closerList,
	}, nil
}

// Discard 返回丢弃所有输出的 Logger
func Discard() *Logger {
	return &Logger{Logger: slog.New(log.New(io.Discard))}
}

// Close 关闭所有 writer
func (l *Logger) Close() error {
	var lastErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// ParseLevel 将字符串转换为日志级别，未知值回退到 info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
