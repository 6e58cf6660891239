package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	openai "github.com/sashabaranov/go-openai"
)

// Config OpenAI配置
type Config struct {
	providers.BaseConfig
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		BaseConfig:  providers.DefaultConfig(),
		Model:       "gpt-4o-mini",
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

// Provider OpenAI提供商。通过自定义 BaseURL 也可接入任何
// OpenAI 兼容端点。
type Provider struct {
	config Config
	client *openai.Client
}

// New 创建新的OpenAI提供商
func New(config Config) *Provider {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.APIEndpoint != "" {
		clientConfig.BaseURL = config.APIEndpoint
	}

	return &Provider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// GetName 获取提供商名称
func (p *Provider) GetName() string {
	return "openai"
}

const analyzeSystemPrompt = `You are a professional proofreader. Examine the text for spelling and grammar problems.
Respond with a JSON array only, no prose. Each element must have the shape:
{"type":"spelling"|"grammar","matchedText":"<exact substring>","message":"<short explanation>","suggestions":["..."],"confidence":0.0-1.0}
Return [] when the text has no problems.`

// AnalyzeChunk 对一个文本块做拼写/语法分析
func (p *Provider) AnalyzeChunk(ctx context.Context, text string) ([]providers.Issue, error) {
	content, err := p.chat(ctx, analyzeSystemPrompt, text)
	if err != nil {
		return nil, err
	}

	var issues []providers.Issue
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &issues); err != nil {
		return nil, providers.NewError("malformed_response",
			fmt.Sprintf("openai response is not a JSON issue array: %v", err))
	}

	return issues, nil
}

const rewriteSystemPrompt = `You are a professional proofreader. Rewrite the text with all spelling and grammar mistakes corrected.
Preserve the original wording, line breaks and formatting wherever they are already correct.
Respond with the corrected text only, no explanations.`

// Rewrite 对整段文本做语法纠正重写
func (p *Provider) Rewrite(ctx context.Context, text string) (string, error) {
	content, err := p.chat(ctx, rewriteSystemPrompt, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stripCodeFence(content)), nil
}

// HealthCheck 健康检查
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		return providers.NewError("health_check", fmt.Sprintf("openai health check failed: %v", err))
	}
	return nil
}

// chat 发送一次对话请求并返回首个候选的内容
func (p *Provider) chat(ctx context.Context, systemPrompt, userText string) (string, error) {
	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.config.Model,
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userText,
			},
		},
	})
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", providers.NewError("empty_response", "openai returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}

// classifyError 将 go-openai 错误映射为提供商错误代码
func classifyError(err error) *providers.Error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "429"):
		return providers.NewError("rate_limit", msg)
	case strings.Contains(msg, "context deadline exceeded"):
		return providers.NewError("timeout", msg)
	case strings.Contains(msg, "500"), strings.Contains(msg, "502"), strings.Contains(msg, "503"):
		return providers.NewError("server_error", msg)
	default:
		return providers.NewError("request_failed", msg)
	}
}

// stripCodeFence 去掉模型偶尔包裹在响应外的 Markdown 代码块标记
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
