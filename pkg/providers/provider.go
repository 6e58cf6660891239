package providers

import (
	"context"
	"time"
)

// BaseConfig 基础配置
type BaseConfig struct {
	// API配置
	APIKey      string `json:"api_key,omitempty"`
	APIEndpoint string `json:"api_endpoint,omitempty"`

	// 超时。核心不做重试：Oracle 失败按空结果处理，以约束请求延迟。
	Timeout time.Duration `json:"timeout"`

	// 自定义头部
	Headers map[string]string `json:"headers,omitempty"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() BaseConfig {
	return BaseConfig{
		Timeout: 2 * time.Minute,
		Headers: make(map[string]string),
	}
}

// Issue 远程模型返回的单个问题，由各提供商解析为统一结构
type Issue struct {
	Type        string   `json:"type"`        // "spelling" 或 "grammar"
	MatchedText string   `json:"matchedText"` // 原文中的问题子串
	Message     string   `json:"message"`     // 说明
	Suggestions []string `json:"suggestions"` // 候选替换
	Confidence  float64  `json:"confidence"`  // 置信度 [0,1]
}

// Provider 校对提供商基础接口。核心按此边界调用远程模型，
// 提供商的选择与凭证属于配置，不属于核心逻辑。
type Provider interface {
	// AnalyzeChunk 对一个文本块做拼写/语法分析
	AnalyzeChunk(ctx context.Context, text string) ([]Issue, error)

	// Rewrite 对整段文本做语法纠正重写
	Rewrite(ctx context.Context, text string) (string, error)

	// GetName 获取提供商名称
	GetName() string

	// HealthCheck 健康检查
	HealthCheck(ctx context.Context) error
}

// Error 提供商错误
type Error struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}

// IsTransient 判断错误是否为瞬态故障（限流、超时、服务端错误）
func (e *Error) IsTransient() bool {
	switch e.Code {
	case "rate_limit", "timeout", "server_error":
		return true
	default:
		return false
	}
}

// NewError 创建提供商错误
func NewError(code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}
