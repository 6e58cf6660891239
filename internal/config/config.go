package config

import (
	"os"
	"time"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	"github.com/spf13/viper"
)

// ProviderConfig 远程模型提供商配置
type ProviderConfig struct {
	Type           string  `mapstructure:"type"`            // openai 或 ollama
	APIKey         string  `mapstructure:"api_key"`
	BaseURL        string  `mapstructure:"base_url"`
	Model          string  `mapstructure:"model"`
	Temperature    float32 `mapstructure:"temperature"`
	MaxTokens      int     `mapstructure:"max_tokens"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Listen       string `mapstructure:"listen"`        // 监听地址
	MaxUploadMB  int64  `mapstructure:"max_upload_mb"` // 上传大小上限（MB）
	ReadTimeout  int    `mapstructure:"read_timeout"`  // 读超时（秒）
	WriteTimeout int    `mapstructure:"write_timeout"` // 写超时（秒）
}

// Config 保存校对器的所有配置
type Config struct {
	Debug          bool           `mapstructure:"debug"`
	DictionaryPath string         `mapstructure:"dictionary_path"` // 附加词表文件，空则仅用内置词表
	AIEnabled      bool           `mapstructure:"ai_enabled"`
	AIChunkSize    int            `mapstructure:"ai_chunk_size"`
	Provider       ProviderConfig `mapstructure:"provider"`
	Server         ServerConfig   `mapstructure:"server"`

	CorrectionThreshold     float64 `mapstructure:"correction_threshold"`
	HighConfidenceThreshold float64 `mapstructure:"high_confidence_threshold"`
}

// LoadConfig 从文件加载配置
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		v.AddConfigPath(home)
		v.AddConfigPath(".")
		v.SetConfigName(".proofreader")
		v.SetConfigType("yaml")
	}

	v.AutomaticEnv()
	v.SetEnvPrefix("PROOFREADER")

	if err := v.ReadInConfig(); err != nil {
		// 找不到配置文件时使用默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// NewDefaultConfig 创建一个新的默认配置
func NewDefaultConfig() *Config {
	return &Config{
		Debug:                   false,
		AIEnabled:               false,
		AIChunkSize:             2000,
		CorrectionThreshold:     0.7,
		HighConfidenceThreshold: 0.8,
		Provider: ProviderConfig{
			Type:           "openai",
			Model:          "gpt-4o-mini",
			Temperature:    0.2,
			MaxTokens:      4096,
			TimeoutSeconds: 120,
		},
		Server: ServerConfig{
			Listen:       ":8080",
			MaxUploadMB:  50,
			ReadTimeout:  300,
			WriteTimeout: 300,
		},
	}
}

func setDefaults(v *viper.Viper) {
	defaults := NewDefaultConfig()

	v.SetDefault("debug", defaults.Debug)
	v.SetDefault("ai_enabled", defaults.AIEnabled)
	v.SetDefault("ai_chunk_size", defaults.AIChunkSize)
	v.SetDefault("correction_threshold", defaults.CorrectionThreshold)
	v.SetDefault("high_confidence_threshold", defaults.HighConfidenceThreshold)
	v.SetDefault("provider.type", defaults.Provider.Type)
	v.SetDefault("provider.model", defaults.Provider.Model)
	v.SetDefault("provider.temperature", defaults.Provider.Temperature)
	v.SetDefault("provider.max_tokens", defaults.Provider.MaxTokens)
	v.SetDefault("provider.timeout_seconds", defaults.Provider.TimeoutSeconds)
	v.SetDefault("server.listen", defaults.Server.Listen)
	v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
}

// AnalysisConfig 由应用配置派生分析流水线配置
func (c *Config) AnalysisConfig() *proofread.Config {
	cfg := proofread.DefaultConfig()
	cfg.AI.Enabled = c.AIEnabled
	if c.AIChunkSize > 0 {
		cfg.AI.ChunkSize = c.AIChunkSize
	}
	if c.CorrectionThreshold > 0 {
		cfg.CorrectionThreshold = c.CorrectionThreshold
	}
	if c.HighConfidenceThreshold > 0 {
		cfg.HighConfidenceThreshold = c.HighConfidenceThreshold
	}
	return cfg
}

// ProviderBaseConfig 由应用配置派生提供商基础配置
func (c *Config) ProviderBaseConfig() providers.BaseConfig {
	base := providers.BaseConfig{
		APIKey:      c.Provider.APIKey,
		APIEndpoint: c.Provider.BaseURL,
	}
	if c.Provider.TimeoutSeconds > 0 {
		base.Timeout = time.Duration(c.Provider.TimeoutSeconds) * time.Second
	}
	return base
}
