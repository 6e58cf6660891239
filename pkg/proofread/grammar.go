package proofread

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
)

// 相邻重复词需要反向引用，标准库 regexp 不支持，用 regexp2
var repetitionPattern = regexp2.MustCompile(`\b(\w+)\s+\1\b`, regexp2.IgnoreCase)

// 缺失冠词：首字母大写的名词直接跟特定动词，且前面没有冠词
var missingArticlePatterns = []*regexp2.Regexp{
	regexp2.MustCompile(`(?<!(?:[Tt]he|[Aa]n?)\s)\b([A-Z][a-z]+) (is important)\b`, regexp2.None),
	regexp2.MustCompile(`(?<!(?:[Tt]he|[Aa]n?)\s)\b([A-Z][a-z]+) (has been)\b`, regexp2.None),
	regexp2.MustCompile(`(?<!(?:[Tt]he|[Aa]n?)\s)\b([A-Z][a-z]+) (was created)\b`, regexp2.None),
	regexp2.MustCompile(`(?<!(?:[Tt]he|[Aa]n?)\s)\b([A-Z][a-z]+) (are required)\b`, regexp2.None),
}

// GrammarAnalyzer 语法分析器：三组独立的规则族，不依赖 Oracle。
// 远程 Oracle 的结果由增强器按同一 schema 追加。
type GrammarAnalyzer struct {
	config GrammarConfig
	rules  []*compiledMistake
	logger *zap.Logger
}

type compiledMistake struct {
	pattern    *regexp2.Regexp
	correction string
	message    string
}

// NewGrammarAnalyzer 创建语法分析器，规则表在构建时编译一次
func NewGrammarAnalyzer(config GrammarConfig, logger *zap.Logger) *GrammarAnalyzer {
	rules := make([]*compiledMistake, 0, len(config.CommonMistakes))
	for _, rule := range config.CommonMistakes {
		compiled, err := regexp2.Compile(rule.Pattern, regexp2.None)
		if err != nil {
			logger.Warn("skipping unparsable grammar rule",
				zap.String("pattern", rule.Pattern), zap.Error(err))
			continue
		}
		rules = append(rules, &compiledMistake{
			pattern:    compiled,
			correction: rule.Correction,
			message:    rule.Message,
		})
	}

	return &GrammarAnalyzer{
		config: config,
		rules:  rules,
		logger: logger,
	}
}

// Analyze 返回三个规则族的语法错误
func (a *GrammarAnalyzer) Analyze(model *TextModel) []Finding {
	if model == nil || model.IsEmpty() {
		return nil
	}

	text := model.RawText
	var findings []Finding

	findings = append(findings, a.checkRepetition(text)...)
	findings = append(findings, a.checkMissingArticles(text)...)
	findings = append(findings, a.checkCommonMistakes(text)...)

	return findings
}

// checkRepetition 相邻的相同 token（不区分大小写）
func (a *GrammarAnalyzer) checkRepetition(text string) []Finding {
	var findings []Finding
	runes := []rune(text)

	m, err := repetitionPattern.FindRunesMatch(runes)
	for err == nil && m != nil {
		word := m.Groups()[1].String()
		findings = append(findings, Finding{
			Category:    CategoryGrammar,
			Subtype:     "repeated_word",
			MatchedText: m.String(),
			Position:    runeIndexToByte(runes, m.Index),
			Message:     fmt.Sprintf("Repeated word '%s'", word),
			Suggestions: []string{word},
			Severity:    SeverityMedium,
		})
		m, err = repetitionPattern.FindNextMatch(m)
	}
	if err != nil {
		a.logger.Warn("repetition scan aborted", zap.Error(err))
	}

	return findings
}

// checkMissingArticles 规则模板命中时建议插入 "The "
func (a *GrammarAnalyzer) checkMissingArticles(text string) []Finding {
	var findings []Finding
	runes := []rune(text)

	for _, pattern := range missingArticlePatterns {
		m, err := pattern.FindRunesMatch(runes)
		for err == nil && m != nil {
			matched := m.String()
			findings = append(findings, Finding{
				Category:    CategoryGrammar,
				Subtype:     "missing_article",
				MatchedText: matched,
				Position:    runeIndexToByte(runes, m.Index),
				Message:     fmt.Sprintf("Possibly missing article before '%s'", m.Groups()[1].String()),
				Suggestions: []string{"The " + lowerFirst(matched)},
				Severity:    SeverityMedium,
			})
			m, err = pattern.FindNextMatch(m)
		}
		if err != nil {
			a.logger.Warn("missing-article scan aborted", zap.Error(err))
		}
	}

	return findings
}

// checkCommonMistakes 人工整理的错误表，直接查找替换
func (a *GrammarAnalyzer) checkCommonMistakes(text string) []Finding {
	var findings []Finding
	runes := []rune(text)

	for _, rule := range a.rules {
		m, err := rule.pattern.FindRunesMatch(runes)
		for err == nil && m != nil {
			findings = append(findings, Finding{
				Category:    CategoryGrammar,
				Subtype:     "common_mistake",
				MatchedText: m.String(),
				Position:    runeIndexToByte(runes, m.Index),
				Message:     rule.message,
				Suggestions: []string{rule.correction},
				Severity:    SeverityHigh,
			})
			m, err = rule.pattern.FindNextMatch(m)
		}
		if err != nil {
			a.logger.Warn("common-mistake scan aborted", zap.Error(err))
		}
	}

	return findings
}

// runeIndexToByte regexp2 的匹配位置按 rune 计，转换为字节偏移
func runeIndexToByte(runes []rune, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}
	if runeIdx > len(runes) {
		runeIdx = len(runes)
	}
	return len(string(runes[:runeIdx]))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
