package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nerdneilsfield/go-proofread-agent/internal/config"
	"github.com/nerdneilsfield/go-proofread-agent/internal/extractor"
	"github.com/nerdneilsfield/go-proofread-agent/internal/logger"
	"github.com/nerdneilsfield/go-proofread-agent/internal/readability"
	"github.com/nerdneilsfield/go-proofread-agent/internal/server"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/oracle"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers/ollama"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers/openai"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// 命令行标志变量
	cfgFile     string
	debugMode   bool
	jsonOutput  bool
	correctedTo string // 纠正文本输出路径
)

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proofreader [flags] input_file",
		Short: "校对工具检测文档中的拼写、语法、排版、结构与邮箱错误",
		Long: `校对工具对 PDF、DOCX 与纯文本文档做多趟分析，
检测拼写、语法、排版、结构与邮箱格式错误，
生成纠正文本、高亮文本与可读性指标。

可选配置远程模型提供商以获得 AI 增强分析:
  - openai: OpenAI 兼容接口
  - ollama: Ollama 本地大语言模型`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0])
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "启用调试日志")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "输出完整 JSON 报告")
	rootCmd.Flags().StringVarP(&correctedTo, "output", "o", "", "把纠正文本写入文件")

	rootCmd.AddCommand(newServeCommand())

	return rootCmd
}

// newServeCommand 创建 serve 子命令
func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "以 HTTP 服务方式运行校对器",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadApp()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			service, err := buildService(cfg, log)
			if err != nil {
				return err
			}

			srv := server.NewServer(cfg.Server, service, extractor.New(log), log)
			return srv.Start()
		},
	}
}

func runAnalyze(inputPath string) error {
	cfg, log, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	service, err := buildService(cfg, log)
	if err != nil {
		return err
	}

	model, err := extractor.New(log).Extract(inputPath)
	if err != nil {
		return err
	}

	report, err := service.Analyze(context.Background(), model)
	if err != nil {
		return err
	}

	if correctedTo != "" {
		if err := os.WriteFile(correctedTo, []byte(report.CorrectedText), 0o644); err != nil {
			return fmt.Errorf("failed to write corrected text: %w", err)
		}
	}

	if jsonOutput {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	printReport(inputPath, report)
	return nil
}

func loadApp() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if debugMode {
		cfg.Debug = true
	}
	return cfg, logger.NewLogger(cfg.Debug), nil
}

// buildService 装配本地 Oracle 与可选的远程提供商
func buildService(cfg *config.Config, log *zap.Logger) (proofread.Service, error) {
	var dictionary *oracle.FuzzyDictionary
	if cfg.DictionaryPath != "" {
		var err error
		dictionary, err = oracle.NewFuzzyDictionaryFromFile(cfg.DictionaryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
	} else {
		dictionary = oracle.NewFuzzyDictionary()
	}

	opts := []proofread.Option{
		proofread.WithLogger(log),
		proofread.WithDictionary(dictionary),
		proofread.WithAutocorrector(dictionary),
		proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()),
		proofread.WithReadability(readability.NewCalculator()),
	}

	if cfg.AIEnabled {
		provider, err := buildProvider(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, proofread.WithProvider(provider))
	}

	return proofread.New(cfg.AnalysisConfig(), opts...)
}

// newProviderRegistry 按应用配置注册所有可用的提供商
func newProviderRegistry(cfg *config.Config) (*providers.Registry, error) {
	base := cfg.ProviderBaseConfig()

	openaiCfg := openai.DefaultConfig()
	openaiCfg.BaseConfig = base
	if cfg.Provider.Model != "" {
		openaiCfg.Model = cfg.Provider.Model
	}
	if cfg.Provider.Temperature > 0 {
		openaiCfg.Temperature = cfg.Provider.Temperature
	}
	if cfg.Provider.MaxTokens > 0 {
		openaiCfg.MaxTokens = cfg.Provider.MaxTokens
	}

	ollamaCfg := ollama.DefaultConfig()
	ollamaCfg.BaseConfig = base
	if cfg.Provider.Model != "" {
		ollamaCfg.Model = cfg.Provider.Model
	}
	if cfg.Provider.Temperature > 0 {
		ollamaCfg.Temperature = cfg.Provider.Temperature
	}
	if cfg.Provider.MaxTokens > 0 {
		ollamaCfg.MaxTokens = cfg.Provider.MaxTokens
	}

	registry := providers.NewRegistry()
	if err := registry.Register("openai", openai.New(openaiCfg)); err != nil {
		return nil, err
	}
	if err := registry.Register("ollama", ollama.New(ollamaCfg)); err != nil {
		return nil, err
	}

	return registry, nil
}

func buildProvider(cfg *config.Config) (providers.Provider, error) {
	registry, err := newProviderRegistry(cfg)
	if err != nil {
		return nil, err
	}

	name := cfg.Provider.Type
	if name == "" {
		name = "openai"
	}

	provider, err := registry.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown provider type %q (available: %s)",
			name, strings.Join(registry.List(), ", "))
	}
	return provider, nil
}
