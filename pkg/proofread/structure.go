package proofread

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	headingPrefixPattern = regexp.MustCompile(`^(Chapter|Section|\d+\.|\w+:)`)
	numberedPattern      = regexp.MustCompile(`^\d+\.`)
)

// 标题格式分类
const (
	headingAllCaps     = "all_caps"
	headingTitleCase   = "title_case"
	headingColonFormat = "colon_format"
	headingNumbered    = "numbered"
	headingOther       = "other"
)

// StructureAnalyzer 结构分析器：基于段落/行分解检测文档结构异常
type StructureAnalyzer struct{}

// NewStructureAnalyzer 创建结构分析器
func NewStructureAnalyzer() *StructureAnalyzer {
	return &StructureAnalyzer{}
}

// Analyze 检查异常段落长度与标题格式一致性
func (a *StructureAnalyzer) Analyze(model *TextModel) []Finding {
	if model == nil || model.IsEmpty() {
		return nil
	}

	var findings []Finding
	findings = append(findings, a.checkShortParagraphs(model.Paragraphs)...)
	findings = append(findings, a.checkHeadingConsistency(model.Lines)...)
	return findings
}

// checkShortParagraphs 长度在 (5,20) 且不像标题的段落可能是错误合并
func (a *StructureAnalyzer) checkShortParagraphs(paragraphs []string) []Finding {
	var findings []Finding

	for i, para := range paragraphs {
		length := len(para)
		if length <= 5 || length >= 20 {
			continue
		}
		if headingPrefixPattern.MatchString(para) {
			continue
		}

		findings = append(findings, Finding{
			Category:    CategoryStructure,
			Subtype:     "short_paragraph",
			MatchedText: para,
			Position:    -1,
			Message:     fmt.Sprintf("Very short paragraph (#%d) - possible formatting issue", i+1),
		})
	}

	return findings
}

// checkHeadingConsistency 收集疑似标题并分类，
// 超过两种格式时发出单条聚合错误（不是每个标题一条）。
func (a *StructureAnalyzer) checkHeadingConsistency(lines []string) []Finding {
	var headings []string
	for _, line := range lines {
		if a.looksLikeHeading(line) {
			headings = append(headings, line)
		}
	}

	if len(headings) <= 1 {
		return nil
	}

	formats := make(map[string]struct{})
	for _, h := range headings {
		formats[classifyHeading(h)] = struct{}{}
	}

	if len(formats) <= 2 {
		return nil
	}

	examples := headings
	if len(examples) > 5 {
		examples = examples[:5]
	}

	return []Finding{{
		Category:    CategoryStructure,
		Subtype:     "inconsistent_headings",
		MatchedText: headings[0],
		Position:    -1,
		Message:     "Inconsistent heading formats detected: " + strings.Join(examples, " | "),
	}}
}

// looksLikeHeading 全大写、章节/编号前缀、或以冒号结尾的短行
func (a *StructureAnalyzer) looksLikeHeading(line string) bool {
	if isAllUpper(line) {
		return true
	}
	if headingPrefixPattern.MatchString(line) {
		return true
	}
	if len(line) < 50 && strings.HasSuffix(line, ":") {
		return true
	}
	return false
}

// classifyHeading 归入固定的小分类
func classifyHeading(heading string) string {
	switch {
	case isAllUpper(heading):
		return headingAllCaps
	case isTitleCase(heading):
		return headingTitleCase
	case strings.Contains(heading, ":"):
		return headingColonFormat
	case numberedPattern.MatchString(heading):
		return headingNumbered
	default:
		return headingOther
	}
}

// isTitleCase 每个以字母开头的词都是首字母大写
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := []rune(w)[0]
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
		// 词的其余部分不能全是大写，否则归为 all_caps
		for _, rest := range []rune(w)[1:] {
			if unicode.IsLetter(rest) && unicode.IsUpper(rest) {
				return false
			}
		}
	}
	return true
}
