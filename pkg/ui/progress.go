package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// CopyProgress 描述一次复制操作在某一时刻的进度
type CopyProgress struct {
	CurrentFilePath     string
	CurrentFileProgress int
	TotalProgress       int
	ProcessedFilesCount int
	TotalFilesCount     int
}

// Sink 接收进度快照，实现方不应保留可变状态
type Sink interface {
	Update(p CopyProgress)
}

// SinkFunc 将函数适配为 Sink
type SinkFunc func(p CopyProgress)

func (f SinkFunc) Update(p CopyProgress) { f(p) }

// NoopSink 在 --no-progress 下使用
type NoopSink struct{}

func (NoopSink) Update(CopyProgress) {}

// BarSink 基于 progressbar 的单行进度条，并与日志输出互斥
type BarSink struct {
	mu     sync.Mutex
	bar    *progressbar.ProgressBar
	writer io.Writer
	active bool
}

const maxDescLen = 40

// NewBarSink 创建进度条实例
func NewBarSink(writer io.Writer) *BarSink {
	bar := progressbar.NewOptions(100,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "#",
			SaucerPadding: "-",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(writer, "\n")
		}),
	)
	return &BarSink{bar: bar, writer: writer, active: true}
}

func (b *BarSink) Update(p CopyProgress) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	desc := fmt.Sprintf("%d/%d", p.ProcessedFilesCount, p.TotalFilesCount)
	if p.CurrentFilePath != "" {
		desc += " " + shortenPath(p.CurrentFilePath, maxDescLen)
	}
	b.bar.Describe(desc)
	_ = b.bar.Set(barValue(p))
}

// barValue 在最后一个文件完成前不超过 99，进度条只由完成事件推满
func barValue(p CopyProgress) int {
	value := p.TotalProgress
	if value >= 100 && p.ProcessedFilesCount < p.TotalFilesCount {
		return 99
	}
	return value
}

// Finish 结束进度条绘制
func (b *BarSink) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return
	}
	if b.bar.IsFinished() {
		b.active = false
		return
	}
	_ = b.bar.Clear()
	fmt.Fprint(b.writer, "\n")
	b.active = false
}

// WrapWriter 返回一个 writer，保证日志输出前清除进度条，结束后重新绘制
func (b *BarSink) WrapWriter(w io.Writer) io.Writer {
	if b == nil {
		return w
	}
	return &progressAwareWriter{sink: b, writer: w}
}

type progressAwareWriter struct {
	sink   *BarSink
	writer io.Writer
}

func (pw *progressAwareWriter) Write(p []byte) (int, error) {
	pw.sink.mu.Lock()
	defer pw.sink.mu.Unlock()
	if !pw.sink.active {
		return pw.writer.Write(p)
	}
	_ = pw.sink.bar.Clear()
	n, err := pw.writer.Write(p)
	_ = pw.sink.bar.RenderBlank()
	return n, err
}

func shortenPath(path string, maxLen int) string {
	clean := strings.NewReplacer("\n", " ", "\r", " ").Replace(path)
	runes := []rune(clean)
	if len(runes) <= maxLen {
		return clean
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	keep := maxLen - 3
	head := keep / 2
	tail := keep - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}
