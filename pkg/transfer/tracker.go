package transfer

import "treecopy/pkg/ui"

// tracker 维护唯一的进度状态，并向 sink 推送快照
type tracker struct {
	state ui.CopyProgress
	sink  ui.Sink
}

func newTracker(totalFiles int, sink ui.Sink) *tracker {
	return &tracker{
		state: ui.CopyProgress{TotalFilesCount: totalFiles},
		sink:  sinkOrNoop(sink),
	}
}

func (t *tracker) startFile(path string) {
	t.state.CurrentFilePath = path
	t.state.CurrentFileProgress = 0
}

// advance 在每个分块写入后调用
func (t *tracker) advance(copied, size int64) {
	pct := 100
	if size > 0 && copied < size {
		pct = int(copied * 100 / size)
	}
	t.state.CurrentFileProgress = pct
	t.recompute()
	t.emit()
}

// completeFile 已完成文件只计入 ProcessedFilesCount 一次
func (t *tracker) completeFile() {
	if t.state.ProcessedFilesCount < t.state.TotalFilesCount {
		t.state.ProcessedFilesCount++
	}
	t.state.CurrentFileProgress = 100
	t.raise(t.percentOf(0))
	t.emit()
}

// finish 成功结束时保证最后一次上报为 100
func (t *tracker) finish() {
	if t.state.TotalProgress == 100 {
		return
	}
	t.state.TotalProgress = 100
	t.emit()
}

func (t *tracker) recompute() {
	t.raise(t.percentOf(t.state.CurrentFileProgress))
}

// raise 只前进不后退；源目录在统计后新增文件时进度会停在 100
func (t *tracker) raise(total int) {
	total = clampPercent(total)
	if total > t.state.TotalProgress {
		t.state.TotalProgress = total
	}
}

func (t *tracker) percentOf(current int) int {
	if t.state.TotalFilesCount == 0 {
		return 100
	}
	return (t.state.ProcessedFilesCount*100 + current) / t.state.TotalFilesCount
}

func (t *tracker) emit() {
	t.sink.Update(t.state)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
