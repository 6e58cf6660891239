package cli

import (
	"testing"

	"github.com/nerdneilsfield/go-proofread-agent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderRegistry(t *testing.T) {
	cfg := config.NewDefaultConfig()

	registry, err := newProviderRegistry(cfg)
	require.NoError(t, err)

	// 启动时注册全部可用的提供商
	assert.ElementsMatch(t, []string{"openai", "ollama"}, registry.List())
}

func TestBuildProviderResolvesFromRegistry(t *testing.T) {
	t.Run("openai", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.Provider.Type = "openai"

		provider, err := buildProvider(cfg)
		require.NoError(t, err)
		assert.Equal(t, "openai", provider.GetName())
	})

	t.Run("ollama", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.Provider.Type = "ollama"
		cfg.Provider.Model = "llama3"

		provider, err := buildProvider(cfg)
		require.NoError(t, err)
		assert.Equal(t, "ollama", provider.GetName())
	})

	t.Run("空类型回落到 openai", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.Provider.Type = ""

		provider, err := buildProvider(cfg)
		require.NoError(t, err)
		assert.Equal(t, "openai", provider.GetName())
	})

	t.Run("未知类型报错并列出可用项", func(t *testing.T) {
		cfg := config.NewDefaultConfig()
		cfg.Provider.Type = "deepl"

		provider, err := buildProvider(cfg)
		assert.Nil(t, provider)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown provider type "deepl"`)
		assert.Contains(t, err.Error(), "openai")
	})
}
