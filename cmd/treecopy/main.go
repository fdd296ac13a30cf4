package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"treecopy/pkg/core"
	"treecopy/pkg/transfer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "treecopy 错误: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "treecopy",
		Short:         "递归复制目录树，支持并发、进度与事务回滚",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			if err := core.ConfigureViper(v); err != nil {
				return err
			}
			cfg, err := core.LoadConfig(v)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			_, err = core.Run(ctx, cfg, stdout)
			return err
		},
	}

	cmd.Flags().StringP(core.KeySource, "s", "", "源目录")
	cmd.Flags().StringP(core.KeyDest, "d", "", "目标目录，不存在时自动创建")
	cmd.Flags().StringP(core.KeyMode, "m", string(transfer.ModeTracked), "复制模式：plain / concurrent / tracked / transactional")
	cmd.Flags().Bool(core.KeyOverwrite, false, "允许覆盖目标端已存在的文件")
	cmd.Flags().Int(core.KeyChunkSize, transfer.DefaultChunkSize, "分块大小（字节），影响进度粒度")
	cmd.Flags().StringArray(core.KeyExclude, nil, "排除模式，可多次指定")
	cmd.Flags().Bool(core.KeyNoProgress, false, "禁用进度条显示")
	cmd.Flags().String(core.KeyLogFile, "", "额外写入的日志文件")
	cmd.Flags().String(core.KeyLogLevel, "info", "日志级别：debug / info / warn / error")
	cmd.Flags().StringP(core.KeyConfig, "c", "", "YAML 配置文件")
	return cmd
}
