package proofread

// ErrorAggregator 错误聚合器：原样合并各类别错误列表
// （类别之间不去重），计算汇总，并驱动两次重写。
type ErrorAggregator struct {
	rewriter                *TextRewriter
	correctionThreshold     float64
	highConfidenceThreshold float64
}

// NewErrorAggregator 创建错误聚合器
func NewErrorAggregator(config *Config) *ErrorAggregator {
	return &ErrorAggregator{
		rewriter:                NewTextRewriter(),
		correctionThreshold:     config.CorrectionThreshold,
		highConfidenceThreshold: config.HighConfidenceThreshold,
	}
}

// BuildReport 汇总各分析器的结果并生成两个派生文本。
// 分析 ID、可读性指标与可选的 Oracle 重写由服务层补充。
func (a *ErrorAggregator) BuildReport(model *TextModel, spelling, grammar, typography, structure, email []Finding) *AnalysisReport {
	report := &AnalysisReport{
		TextLength:       len(model.RawText),
		PagesCount:       pagesCount(model),
		ParagraphsCount:  len(model.Paragraphs),
		SpellingErrors:   emptyIfNil(spelling),
		GrammarErrors:    emptyIfNil(grammar),
		TypographyErrors: emptyIfNil(typography),
		StructureErrors:  emptyIfNil(structure),
		EmailErrors:      emptyIfNil(email),
	}

	report.TotalErrors = len(spelling) + len(grammar) + len(typography) + len(structure) + len(email)
	report.ErrorSummary = a.summarize(spelling, grammar, typography, structure, email)

	report.CorrectedText = a.rewriter.CorrectText(model.RawText, spelling, a.correctionThreshold)
	report.HighlightedText = a.rewriter.HighlightText(model.RawText, spelling, typography, email)

	return report
}

// summarize 每个类别的计数加一项值得关注的子计数
func (a *ErrorAggregator) summarize(spelling, grammar, typography, structure, email []Finding) ErrorSummary {
	var summary ErrorSummary

	summary.Spelling.Count = len(spelling)
	for _, f := range spelling {
		if f.Confidence > a.highConfidenceThreshold {
			summary.Spelling.HighConfidence++
		}
	}

	summary.Grammar.Count = len(grammar)
	for _, f := range grammar {
		if f.Severity == SeverityHigh {
			summary.Grammar.HighSeverity++
		}
	}

	summary.Typography.Count = len(typography)
	for _, f := range typography {
		switch f.Subtype {
		case "multiple_spaces", "missing_space", "number_spacing":
			summary.Typography.Formatting++
		}
	}

	summary.Structure.Count = len(structure)

	summary.Email.Count = len(email)
	for _, f := range email {
		if f.Subtype == "invalid_format" {
			summary.Email.InvalidFormat++
		}
	}

	return summary
}

func pagesCount(model *TextModel) int {
	if len(model.Pages) == 0 {
		return 1
	}
	return len(model.Pages)
}

func emptyIfNil(findings []Finding) []Finding {
	if findings == nil {
		return []Finding{}
	}
	return findings
}
