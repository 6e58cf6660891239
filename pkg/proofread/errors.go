package proofread

import (
	"errors"
	"fmt"
)

// 预定义错误
var (
	// ErrExtractionFailure 文件无法解析或编码不受支持
	ErrExtractionFailure = errors.New("extraction failure")

	// ErrNoReadableText 文档中没有可读文本
	ErrNoReadableText = errors.New("no readable text found in document")

	// ErrOracleUnavailable Oracle 调用失败或超时
	ErrOracleUnavailable = errors.New("oracle unavailable")

	// ErrMalformedOracleResponse Oracle 返回了无法解析的响应
	ErrMalformedOracleResponse = errors.New("malformed oracle response")

	// ErrInvalidConfig 无效配置
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingOracle 必需的本地 Oracle（词典、自动纠错、相似度）未注入
	ErrMissingOracle = errors.New("required oracle not configured")
)

// 错误代码常量
const (
	ErrCodeExtraction = "EXTRACTION"
	ErrCodeNoText     = "NO_TEXT"
	ErrCodeOracle     = "ORACLE"
	ErrCodeProvider   = "PROVIDER"
	ErrCodeConfig     = "CONFIG"
)

// AnalysisError 分析错误
type AnalysisError struct {
	Code     string // 错误代码
	Message  string // 错误消息
	Cause    error  // 原因
	Analyzer string // 发生错误的分析器
}

// Error 实现error接口
func (e *AnalysisError) Error() string {
	if e.Analyzer != "" {
		return fmt.Sprintf("[%s] %s in analyzer '%s'", e.Code, e.Message, e.Analyzer)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回原因错误
func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// IsFatal 是否应中止整个请求。仅提取阶段的两类错误是致命的，
// 分析器级别的故障一律降级为空结果。
func (e *AnalysisError) IsFatal() bool {
	return e.Code == ErrCodeExtraction || e.Code == ErrCodeNoText
}

// WrapError 包装为分析错误
func WrapError(cause error, code, message string) *AnalysisError {
	return &AnalysisError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}
