package proofread

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	multipleSpacesPattern = regexp.MustCompile(` {2,}`)
	oddQuotePattern       = regexp.MustCompile("[“”‘’`´]")
	missingSpacePattern   = regexp.MustCompile(`[.!?:;,][a-zA-Z]`)
	sentenceSplitPattern  = regexp.MustCompile(`[.!?]+`)
	numberSpacingPattern  = regexp.MustCompile(`\b\d+\s+\d+\b`)
)

// TypographyAnalyzer 排版分析器：独立于拼写与语法的格式扫描
type TypographyAnalyzer struct{}

// NewTypographyAnalyzer 创建排版分析器
func NewTypographyAnalyzer() *TypographyAnalyzer {
	return &TypographyAnalyzer{}
}

// Analyze 扫描原文中的排版问题，每项检查产生自己的 subtype
func (a *TypographyAnalyzer) Analyze(model *TextModel) []Finding {
	if model == nil || model.IsEmpty() {
		return nil
	}

	text := model.RawText
	var findings []Finding

	// 连续多个空格
	for _, span := range multipleSpacesPattern.FindAllStringIndex(text, -1) {
		matched := text[span[0]:span[1]]
		findings = append(findings, Finding{
			Category:    CategoryTypography,
			Subtype:     "multiple_spaces",
			MatchedText: matched,
			Position:    span[0],
			Message:     fmt.Sprintf("Multiple consecutive spaces found (%d spaces)", len(matched)),
			Suggestions: []string{" "},
		})
	}

	// 非标准引号字形
	for _, span := range oddQuotePattern.FindAllStringIndex(text, -1) {
		findings = append(findings, Finding{
			Category:    CategoryTypography,
			Subtype:     "inconsistent_quotes",
			MatchedText: text[span[0]:span[1]],
			Position:    span[0],
			Message:     "Inconsistent quotation marks",
			Suggestions: []string{`"`, "'"},
		})
	}

	// 句读后缺空格
	for _, span := range missingSpacePattern.FindAllStringIndex(text, -1) {
		matched := text[span[0]:span[1]]
		findings = append(findings, Finding{
			Category:    CategoryTypography,
			Subtype:     "missing_space",
			MatchedText: matched,
			Position:    span[0],
			Message:     "Missing space after punctuation",
			Suggestions: []string{matched[:1] + " " + matched[1:]},
		})
	}

	findings = append(findings, a.checkSentenceCapitalization(text)...)

	// 仅以空白分隔的相邻数字组，可能是一个数字被意外拆开
	for _, span := range numberSpacingPattern.FindAllStringIndex(text, -1) {
		findings = append(findings, Finding{
			Category:    CategoryTypography,
			Subtype:     "number_spacing",
			MatchedText: text[span[0]:span[1]],
			Position:    span[0],
			Message:     "Potential number formatting issue",
		})
	}

	return findings
}

// checkSentenceCapitalization 按句子结束符拆分，
// 每个长度大于 1 的非空片段必须以大写字母开头
func (a *TypographyAnalyzer) checkSentenceCapitalization(text string) []Finding {
	var findings []Finding

	for _, sentence := range sentenceSplitPattern.Split(text, -1) {
		trimmed := strings.TrimSpace(sentence)
		if len([]rune(trimmed)) <= 1 {
			continue
		}

		first := []rune(trimmed)[0]
		if !unicode.IsLower(first) {
			continue
		}

		display := trimmed
		if len([]rune(display)) > 20 {
			display = string([]rune(display)[:20]) + "..."
		}

		findings = append(findings, Finding{
			Category:    CategoryTypography,
			Subtype:     "sentence_start",
			MatchedText: display,
			Position:    -1,
			Message:     "Sentence should start with capital letter",
			Suggestions: []string{strings.ToUpper(string(first)) + trimmed[len(string(first)):]},
		})
	}

	return findings
}
