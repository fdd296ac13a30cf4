package core

import (
	"context"
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"treecopy/pkg/endpoint"
	"treecopy/pkg/logging"
	"treecopy/pkg/transfer"
	"treecopy/pkg/ui"
)

// Run 执行一次复制，stdout 为进度条与日志的输出终端
func Run(ctx context.Context, cfg *CopyConfig, stdout io.Writer) (transfer.Result, error) {
	if err := cfg.Validate(); err != nil {
		return transfer.Result{}, err
	}
	fsys := endpoint.NewLocalFS()
	defer fsys.Close()

	var sink ui.Sink = ui.NoopSink{}
	var bar *ui.BarSink
	stdWriter := stdout
	if !cfg.NoProgress && (cfg.Mode == transfer.ModeTracked || cfg.Mode == transfer.ModeTransactional) {
		bar = ui.NewBarSink(stdout)
		sink = bar
		stdWriter = bar.WrapWriter(stdout)
	}

	logWriters := []io.Writer{stdWriter}
	var logFile *os.File
	if cfg.LogFile != "" {
		file, err := os.Create(cfg.LogFile)
		if err != nil {
			return transfer.Result{}, err
		}
		logFile = file
		logWriters = append(logWriters, file)
	}
	logger, err := logging.New(cfg.LogLevel, logWriters...)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return transfer.Result{}, err
	}
	defer logger.Close()

	copier := transfer.Copier{
		FS:        fsys,
		Logger:    logger.Logger,
		ChunkSize: cfg.ChunkSize,
		Excludes:  cfg.Excludes,
	}
	result, err := copier.Run(ctx, cfg.Mode, cfg.Source.Path, cfg.Dest.Path, sink, cfg.Overwrite)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		logger.Error("复制未完成", "mode", cfg.Mode, "src", cfg.Source.DisplayName(), "dst", cfg.Dest.DisplayName(), "err", err)
		return result, err
	}
	logger.Info("全部完成",
		"mode", cfg.Mode,
		"files", result.Files,
		"dirs", result.Dirs,
		"skipped", result.Skipped,
		"size", humanize.IBytes(uint64(result.Bytes)),
	)
	return result, nil
}
