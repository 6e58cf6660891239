package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
)

// Config Ollama配置
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
		Model:       "llama3",
		Temperature: 0.2,
		MaxTokens:   4096,
	}
}

// Provider Ollama提供商
type Provider struct {
	config     Config
	httpClient *http.Client
}

// New 创建新的Ollama提供商
func New(config Config) *Provider {
	if config.APIEndpoint == "" {
		config.APIEndpoint = "http://localhost:11434"
	}

	return &Provider{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// GetName 获取提供商名称
func (p *Provider) GetName() string {
	return "ollama"
}

// GenerateRequest Ollama生成请求
type GenerateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	System  string                 `json:"system,omitempty"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

// GenerateResponse Ollama生成响应
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

const analyzeSystemPrompt = `You are a professional proofreader. Examine the text for spelling and grammar problems.
Respond with a JSON array only, no prose. Each element must have the shape:
{"type":"spelling"|"grammar","matchedText":"<exact substring>","message":"<short explanation>","suggestions":["..."],"confidence":0.0-1.0}
Return [] when the text has no problems.`

// AnalyzeChunk 对一个文本块做拼写/语法分析
func (p *Provider) AnalyzeChunk(ctx context.Context, text string) ([]providers.Issue, error) {
	content, err := p.generate(ctx, analyzeSystemPrompt, text)
	if err != nil {
		return nil, err
	}

	var issues []providers.Issue
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &issues); err != nil {
		return nil, providers.NewError("malformed_response",
			fmt.Sprintf("ollama response is not a JSON issue array: %v", err))
	}

	return issues, nil
}

const rewriteSystemPrompt = `You are a professional proofreader. Rewrite the text with all spelling and grammar mistakes corrected.
Preserve the original wording, line breaks and formatting wherever they are already correct.
Respond with the corrected text only, no explanations.`

// Rewrite 对整段文本做语法纠正重写
func (p *Provider) Rewrite(ctx context.Context, text string) (string, error) {
	content, err := p.generate(ctx, rewriteSystemPrompt, text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stripCodeFence(content)), nil
}

// HealthCheck 健康检查
func (p *Provider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.APIEndpoint+"/api/tags", nil)
	if err != nil {
		return providers.NewError("health_check", err.Error())
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return providers.NewError("health_check", fmt.Sprintf("ollama unreachable: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return providers.NewError("health_check", fmt.Sprintf("ollama returned status %d", resp.StatusCode))
	}
	return nil
}

// generate 调用 /api/generate 并返回完整响应文本
func (p *Provider) generate(ctx context.Context, system, prompt string) (string, error) {
	generateReq := GenerateRequest{
		Model:  p.config.Model,
		Prompt: prompt,
		System: system,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": p.config.Temperature,
			"num_predict": p.config.MaxTokens,
		},
	}

	body, err := json.Marshal(generateReq)
	if err != nil {
		return "", providers.NewError("request_failed", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.config.APIEndpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", providers.NewError("request_failed", err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range p.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", providers.NewError("timeout", err.Error())
		}
		return "", providers.NewError("request_failed", err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", providers.NewError("request_failed", err.Error())
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", providers.NewError("rate_limit", string(respBody))
	case resp.StatusCode >= 500:
		return "", providers.NewError("server_error", string(respBody))
	case resp.StatusCode != http.StatusOK:
		return "", providers.NewError("request_failed",
			fmt.Sprintf("ollama returned status %d: %s", resp.StatusCode, respBody))
	}

	var generateResp GenerateResponse
	if err := json.Unmarshal(respBody, &generateResp); err != nil {
		return "", providers.NewError("malformed_response", err.Error())
	}

	return generateResp.Response, nil
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
