package proofread

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	"go.uber.org/zap"
)

// AIEnhancer AI 增强器：把文本按句子边界分块发给远程模型，
// 把结构化响应归一化为统一的 Finding。任何 Oracle 故障
// （超时、限流、响应格式错误）都静默降级为该块的空结果，
// 绝不影响整体分析。
type AIEnhancer struct {
	provider providers.Provider
	chunker  *SentenceChunker
	fallback []compiledFallback
	logger   *zap.Logger
}

type compiledFallback struct {
	pattern *regexp.Regexp
	rule    FallbackRule
}

// NewAIEnhancer 创建 AI 增强器
func NewAIEnhancer(config AIConfig, provider providers.Provider, logger *zap.Logger) *AIEnhancer {
	fallback := make([]compiledFallback, 0, len(config.FallbackRules))
	for _, rule := range config.FallbackRules {
		pattern, err := regexp.Compile(rule.Pattern)
		if err != nil {
			logger.Warn("skipping unparsable fallback rule",
				zap.String("pattern", rule.Pattern), zap.Error(err))
			continue
		}
		fallback = append(fallback, compiledFallback{pattern: pattern, rule: rule})
	}

	return &AIEnhancer{
		provider: provider,
		chunker:  NewSentenceChunker(config.ChunkSize),
		fallback: fallback,
		logger:   logger,
	}
}

// Enhance 分析全文并按声明的类型归入拼写/语法类别。
// 远程模型一无所获时咨询本地兜底表部分补偿。
func (e *AIEnhancer) Enhance(ctx context.Context, raw string) (spelling, grammar []Finding) {
	chunks := e.chunker.Chunk(raw)

	for i, chunk := range chunks {
		issues, err := e.provider.AnalyzeChunk(ctx, chunk)
		if err != nil {
			e.logger.Warn("ai chunk analysis degraded to empty result",
				zap.String("provider", e.provider.GetName()),
				zap.Int("chunk", i),
				zap.Bool("transient", isTransientProviderError(err)),
				zap.Error(err))
			continue
		}

		for _, issue := range issues {
			finding := e.normalize(raw, issue)
			if finding.Category == CategorySpelling {
				spelling = append(spelling, finding)
			} else {
				grammar = append(grammar, finding)
			}
		}
	}

	if len(spelling) == 0 && len(grammar) == 0 {
		return e.applyFallback(raw)
	}

	return spelling, grammar
}

// RewriteText 全文重写趟，作为纠正流程的最后一步。
// 失败时返回原文。
func (e *AIEnhancer) RewriteText(ctx context.Context, text string) string {
	rewritten, err := e.provider.Rewrite(ctx, text)
	if err != nil {
		e.logger.Warn("ai rewrite degraded to identity",
			zap.String("provider", e.provider.GetName()),
			zap.Bool("transient", isTransientProviderError(err)),
			zap.Error(err))
		return text
	}
	if rewritten == "" {
		return text
	}
	return rewritten
}

// normalize 把提供商响应转换为统一 schema
func (e *AIEnhancer) normalize(raw string, issue providers.Issue) Finding {
	category := CategoryGrammar
	if strings.EqualFold(issue.Type, "spelling") {
		category = CategorySpelling
	}

	confidence := issue.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	suggestions := dedupeCaseInsensitive(issue.Suggestions)
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}

	return Finding{
		Category:    category,
		Subtype:     "ai_suggested",
		MatchedText: issue.MatchedText,
		Position:    strings.Index(raw, issue.MatchedText),
		Message:     issue.Message,
		Suggestions: suggestions,
		Confidence:  confidence,
		Severity:    severityForIssue(issue.Type),
	}
}

// severityForIssue Oracle 来源的错误按类型映射严重程度
func severityForIssue(issueType string) Severity {
	switch strings.ToLower(issueType) {
	case "spelling", "grammar":
		return SeverityHigh
	case "punctuation":
		return SeverityMedium
	case "style", "colloquialisms":
		return SeverityLow
	default:
		return SeverityMedium
	}
}

// applyFallback 本地兜底表：每条规则上报第一处命中
func (e *AIEnhancer) applyFallback(raw string) (spelling, grammar []Finding) {
	for _, fb := range e.fallback {
		loc := fb.pattern.FindStringIndex(raw)
		if loc == nil {
			continue
		}

		finding := Finding{
			Category:    CategorySpelling,
			Subtype:     "ai_fallback",
			MatchedText: raw[loc[0]:loc[1]],
			Position:    loc[0],
			Message:     fb.rule.Message,
			Suggestions: []string{fb.rule.Correction},
			Confidence:  fb.rule.Confidence,
		}
		if strings.EqualFold(fb.rule.Type, "grammar") {
			finding.Category = CategoryGrammar
			finding.Severity = SeverityHigh
			grammar = append(grammar, finding)
		} else {
			spelling = append(spelling, finding)
		}
	}

	return spelling, grammar
}

// isTransientProviderError 瞬态故障（限流、超时、服务端错误）
// 与永久故障（鉴权、响应格式错误）在降级日志里区分开，
// 便于运维判断是否值得重试该次请求。
func isTransientProviderError(err error) bool {
	var perr *providers.Error
	return errors.As(err, &perr) && perr.IsTransient()
}

func dedupeCaseInsensitive(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
