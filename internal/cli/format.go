package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
)

// printReport 在终端打印分析报告的汇总表
func printReport(inputPath string, report *proofread.AnalysisReport) {
	bold := color.New(color.Bold)
	_, _ = bold.Printf("分析报告: %s\n", inputPath)
	fmt.Printf("分析 ID: %s\n", report.AnalysisID)
	fmt.Printf("文本长度: %d 字符, %d 页, %d 段落\n\n",
		report.TextLength, report.PagesCount, report.ParagraphsCount)

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"类别", "错误数", "备注"})
	tw.AppendRows([]table.Row{
		{"拼写", report.ErrorSummary.Spelling.Count,
			fmt.Sprintf("高置信度 %d", report.ErrorSummary.Spelling.HighConfidence)},
		{"语法", report.ErrorSummary.Grammar.Count,
			fmt.Sprintf("高严重度 %d", report.ErrorSummary.Grammar.HighSeverity)},
		{"排版", report.ErrorSummary.Typography.Count,
			fmt.Sprintf("格式类 %d", report.ErrorSummary.Typography.Formatting)},
		{"结构", report.ErrorSummary.Structure.Count, ""},
		{"邮箱", report.ErrorSummary.Email.Count,
			fmt.Sprintf("格式无效 %d", report.ErrorSummary.Email.InvalidFormat)},
	})
	tw.AppendFooter(table.Row{"合计", report.TotalErrors, ""})
	tw.SetStyle(table.StyleLight)
	tw.Render()

	fmt.Println()
	printFindings("拼写错误", report.SpellingErrors)
	printFindings("语法错误", report.GrammarErrors)

	fmt.Println()
	_, _ = bold.Println("可读性指标")
	fmt.Printf("  词数 %d, 句数 %d, 平均每句 %.1f 词\n",
		report.Metrics.WordCount, report.Metrics.SentenceCount, report.Metrics.AvgWordsPerSentence)
	fmt.Printf("  Flesch Reading Ease %.1f, Flesch-Kincaid Grade %.1f\n",
		report.Metrics.FleschReadingEase, report.Metrics.FleschKincaidGrade)
	fmt.Printf("  ARI %.1f, Coleman-Liau %.1f\n",
		report.Metrics.AutomatedReadabilityIndex, report.Metrics.ColemanLiauIndex)

	if report.TotalErrors == 0 {
		color.Green("\n未发现错误")
	} else {
		color.Yellow("\n共发现 %d 处错误", report.TotalErrors)
	}
}

// printFindings 打印单类别错误明细，最多 10 条
func printFindings(title string, findings []proofread.Finding) {
	if len(findings) == 0 {
		return
	}

	_, _ = color.New(color.Bold).Println(title)
	limit := len(findings)
	if limit > 10 {
		limit = 10
	}

	for _, f := range findings[:limit] {
		line := fmt.Sprintf("  %q: %s", f.MatchedText, f.Message)
		if len(f.Suggestions) > 0 {
			line += fmt.Sprintf(" (建议: %s)", f.Suggestions[0])
		}
		fmt.Println(line)
	}

	if len(findings) > limit {
		fmt.Printf("  ... 另有 %d 条\n", len(findings)-limit)
	}
}
