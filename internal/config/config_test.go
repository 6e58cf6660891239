package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	// 指定了不存在的文件路径时报错
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proofreader.yaml")
	content := `
debug: true
ai_enabled: true
ai_chunk_size: 500
provider:
  type: ollama
  model: llama3
  timeout_seconds: 30
server:
  listen: ":9090"
  max_upload_mb: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.Debug)
	assert.True(t, cfg.AIEnabled)
	assert.Equal(t, 500, cfg.AIChunkSize)
	assert.Equal(t, "ollama", cfg.Provider.Type)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, int64(10), cfg.Server.MaxUploadMB)
	// 未覆盖的键保留默认值
	assert.InDelta(t, 0.7, cfg.CorrectionThreshold, 0.001)
	assert.Equal(t, 300, cfg.Server.ReadTimeout)
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.False(t, cfg.AIEnabled)
	assert.Equal(t, 2000, cfg.AIChunkSize)
	assert.Equal(t, "openai", cfg.Provider.Type)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, int64(50), cfg.Server.MaxUploadMB)
}

func TestAnalysisConfigDerivation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.AIEnabled = true
	cfg.AIChunkSize = 1234
	cfg.CorrectionThreshold = 0.6

	derived := cfg.AnalysisConfig()
	assert.True(t, derived.AI.Enabled)
	assert.Equal(t, 1234, derived.AI.ChunkSize)
	assert.InDelta(t, 0.6, derived.CorrectionThreshold, 0.001)
	// 人工整理的规则表随默认配置带入
	assert.NotEmpty(t, derived.Spelling.CuratedTypos)
	assert.NotEmpty(t, derived.Grammar.CommonMistakes)
}

func TestProviderBaseConfigDerivation(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Provider.APIKey = "key"
	cfg.Provider.BaseURL = "http://localhost:9999"
	cfg.Provider.TimeoutSeconds = 45

	base := cfg.ProviderBaseConfig()
	assert.Equal(t, "key", base.APIKey)
	assert.Equal(t, "http://localhost:9999", base.APIEndpoint)
	assert.Equal(t, 45*time.Second, base.Timeout)
}
