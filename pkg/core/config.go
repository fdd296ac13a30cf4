package core

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"treecopy/pkg/endpoint"
	"treecopy/pkg/transfer"
)

// 配置键，与 CLI flag 同名；环境变量为 TREECOPY_ 前缀加大写下划线形式
const (
	KeySource     = "source"
	KeyDest       = "dest"
	KeyMode       = "mode"
	KeyOverwrite  = "overwrite"
	KeyChunkSize  = "chunk-size"
	KeyExclude    = "exclude"
	KeyLogFile    = "log-file"
	KeyLogLevel   = "log-level"
	KeyNoProgress = "no-progress"
	KeyConfig     = "config"
)

// CopyConfig 表示一次复制任务的配置
type CopyConfig struct {
	Source     endpoint.Endpoint
	Dest       endpoint.Endpoint
	Mode       transfer.Mode
	Overwrite  bool
	ChunkSize  int
	Excludes   []string
	LogFile    string
	LogLevel   string
	NoProgress bool
}

// Validate 进行基础校验并补全默认值
func (c *CopyConfig) Validate() error {
	if c.Source.Path == "" || c.Dest.Path == "" {
		return fmt.Errorf("源和目标路径均不能为空")
	}
	if c.Source.Path == c.Dest.Path {
		return fmt.Errorf("源与目标相同: %s", c.Source.Path)
	}
	if c.Source.Contains(c.Dest) {
		return fmt.Errorf("目标路径位于源目录之内: %s", c.Dest.Path)
	}
	if c.Mode == "" {
		c.Mode = transfer.ModeTracked
	}
	if _, err := transfer.ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if c.ChunkSize < 0 {
		return fmt.Errorf("chunk-size 不能为负数: %d", c.ChunkSize)
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = transfer.DefaultChunkSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// ConfigureViper 设置默认值与环境变量绑定，并在指定时读取配置文件
func ConfigureViper(v *viper.Viper) error {
	v.SetEnvPrefix("TREECOPY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyMode, string(transfer.ModeTracked))
	v.SetDefault(KeyChunkSize, transfer.DefaultChunkSize)
	v.SetDefault(KeyLogLevel, "info")

	configFile := v.GetString(KeyConfig)
	if configFile == "" {
		return nil
	}
	v.SetConfigFile(configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("读取配置文件失败 %s: %w", configFile, err)
	}
	return nil
}

// LoadConfig 从 viper 中组装 CopyConfig
func LoadConfig(v *viper.Viper) (*CopyConfig, error) {
	rawSource := v.GetString(KeySource)
	rawDest := v.GetString(KeyDest)
	if rawSource == "" || rawDest == "" {
		return nil, fmt.Errorf("必须同时指定 --source 与 --dest")
	}
	src, err := endpoint.ParseEndpoint(rawSource)
	if err != nil {
		return nil, err
	}
	dst, err := endpoint.ParseEndpoint(rawDest)
	if err != nil {
		return nil, err
	}
	mode, err := transfer.ParseMode(strings.ToLower(v.GetString(KeyMode)))
	if err != nil {
		return nil, err
	}
	cfg := &CopyConfig{
		Source:     src,
		Dest:       dst,
		Mode:       mode,
		Overwrite:  v.GetBool(KeyOverwrite),
		ChunkSize:  v.GetInt(KeyChunkSize),
		Excludes:   v.GetStringSlice(KeyExclude),
		LogFile:    v.GetString(KeyLogFile),
		LogLevel:   v.GetString(KeyLogLevel),
		NoProgress: v.GetBool(KeyNoProgress),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
