package proofread

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// edit 针对原文偏移量的一次替换
type edit struct {
	start       int
	end         int
	replacement string
}

// TextRewriter 文本重写器。所有替换先在原文偏移量上计算为
// (跨度, 替换) 编辑列表，再按偏移排序一次性应用；
// 与先前编辑跨度重叠的编辑被跳过。这样顺序显式可测，
// 避免逐次 replace-first-occurrence 的脆弱模式。
type TextRewriter struct{}

// NewTextRewriter 创建文本重写器
func NewTextRewriter() *TextRewriter {
	return &TextRewriter{}
}

// CorrectText 纠正文本：按检测顺序应用置信度超过阈值的拼写建议，
// 每条错误消费原文中第一个尚未被占用的整词出现，
// 同一 token 重复出现时每条错误至多纠正一次。
func (r *TextRewriter) CorrectText(raw string, spelling []Finding, threshold float64) string {
	var edits []edit
	var consumed []edit

	for _, f := range spelling {
		if f.Confidence <= threshold || len(f.Suggestions) == 0 {
			continue
		}

		span, ok := firstFreeWordOccurrence(raw, f.MatchedText, consumed)
		if !ok {
			continue
		}

		e := edit{
			start:       span[0],
			end:         span[1],
			replacement: restoreCase(raw[span[0]:span[1]], f.Suggestions[0]),
		}
		edits = append(edits, e)
		consumed = append(consumed, e)
	}

	return applyEdits(raw, edits, nil)
}

// HighlightText 生成高亮文本：先按检测顺序包裹拼写错误，
// 再包裹排版与邮箱错误。每次包裹只消费第一个尚未包裹的出现，
// 顺序稳定，因此不同类别的重叠子串不会产生嵌套标记。
// 输出对原文与提示内容做 HTML 转义。
func (r *TextRewriter) HighlightText(raw string, spelling, typography, email []Finding) string {
	var edits []edit
	var consumed []edit

	addEdit := func(span [2]int, replacement string) {
		e := edit{start: span[0], end: span[1], replacement: replacement}
		edits = append(edits, e)
		consumed = append(consumed, e)
	}

	for _, f := range spelling {
		span, ok := firstFreeWordOccurrence(raw, f.MatchedText, consumed)
		if !ok {
			continue
		}
		tooltip := "Suggestions: " + strings.Join(f.Suggestions, ", ")
		addEdit(span, wrapSpan("spelling-error", tooltip, raw[span[0]:span[1]]))
	}

	for _, f := range typography {
		span, ok := firstFreeLiteralOccurrence(raw, f.MatchedText, consumed)
		if !ok {
			continue
		}
		addEdit(span, wrapSpan("typography-error", f.Message, raw[span[0]:span[1]]))
	}

	for _, f := range email {
		span, ok := firstFreeLiteralOccurrence(raw, f.MatchedText, consumed)
		if !ok {
			continue
		}
		addEdit(span, wrapSpan("email-error", f.Message, raw[span[0]:span[1]]))
	}

	return applyEdits(raw, edits, html.EscapeString)
}

// wrapSpan 构造带提示的高亮标记，内容与提示均转义
func wrapSpan(class, tooltip, content string) string {
	return `<span class="` + class + `" title="` + html.EscapeString(tooltip) + `">` +
		html.EscapeString(content) + `</span>`
}

// firstFreeWordOccurrence 原文中 token 第一个整词出现，
// 且不与已占用的跨度重叠
func firstFreeWordOccurrence(raw, token string, consumed []edit) ([2]int, bool) {
	if token == "" {
		return [2]int{}, false
	}

	pattern, err := regexp.Compile(`\b` + regexp.QuoteMeta(token) + `\b`)
	if err != nil {
		return [2]int{}, false
	}

	for _, span := range pattern.FindAllStringIndex(raw, -1) {
		if !overlapsAny(span[0], span[1], consumed) {
			return [2]int{span[0], span[1]}, true
		}
	}
	return [2]int{}, false
}

// firstFreeLiteralOccurrence 原文中子串第一个未被占用的字面出现
func firstFreeLiteralOccurrence(raw, literal string, consumed []edit) ([2]int, bool) {
	if literal == "" {
		return [2]int{}, false
	}

	from := 0
	for {
		idx := strings.Index(raw[from:], literal)
		if idx < 0 {
			return [2]int{}, false
		}
		start := from + idx
		end := start + len(literal)
		if !overlapsAny(start, end, consumed) {
			return [2]int{start, end}, true
		}
		from = start + 1
	}
}

func overlapsAny(start, end int, consumed []edit) bool {
	for _, c := range consumed {
		if start < c.end && c.start < end {
			return true
		}
	}
	return false
}

// applyEdits 按偏移升序一次性应用编辑。
// escape 不为空时对编辑之间的原文片段做转义。
func applyEdits(raw string, edits []edit, escape func(string) string) string {
	if escape == nil {
		escape = func(s string) string { return s }
	}
	if len(edits) == 0 {
		return escape(raw)
	}

	sorted := append([]edit(nil), edits...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	var b strings.Builder
	pos := 0
	for _, e := range sorted {
		if e.start < pos {
			// 不应发生：编辑在收集阶段已保证互不重叠
			continue
		}
		b.WriteString(escape(raw[pos:e.start]))
		b.WriteString(e.replacement)
		pos = e.end
	}
	b.WriteString(escape(raw[pos:]))

	return b.String()
}

// restoreCase 让替换词继承原词的大小写形态
func restoreCase(original, replacement string) string {
	if isAllUpper(original) {
		return strings.ToUpper(replacement)
	}
	if isCapitalized(original) {
		return cases.Title(language.English, cases.NoLower).String(replacement)
	}
	return replacement
}
