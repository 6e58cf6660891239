package proofread

import (
	"regexp"
	"strings"
)

var (
	// 宽松的完整形态：仍要求 @ 和类似 TLD 的后缀
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]*@[A-Za-z0-9.-]*\.[A-Za-z]{2,}\b`)

	// 更宽松的 local-part@anything，捕捉从未获得有效域名的地址
	incompleteEmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]*\b`)

	// 用于判断宽松匹配是否已经是完整形态
	anchoredEmailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]*@[A-Za-z0-9.-]*\.[A-Za-z]{2,}$`)
)

// EmailValidator 邮箱校验器：发现邮箱形态的子串（包括残缺的）并归类缺陷
type EmailValidator struct{}

// NewEmailValidator 创建邮箱校验器
func NewEmailValidator() *EmailValidator {
	return &EmailValidator{}
}

// Analyze 两趟独立扫描：完整形态的结构缺陷检查，
// 以及残缺地址检查（已匹配完整形态的不重复上报）。
func (v *EmailValidator) Analyze(model *TextModel) []Finding {
	if model == nil || model.IsEmpty() {
		return nil
	}

	text := model.RawText
	var findings []Finding

	for _, span := range emailPattern.FindAllStringIndex(text, -1) {
		email := text[span[0]:span[1]]
		issues := structuralIssues(email)
		if len(issues) == 0 {
			continue
		}

		findings = append(findings, Finding{
			Category:    CategoryEmail,
			Subtype:     "invalid_format",
			MatchedText: email,
			Position:    span[0],
			Message:     strings.Join(issues, "; "),
			Suggestions: []string{"Check email format (e.g., user@domain.com)"},
		})
	}

	for _, span := range incompleteEmailPattern.FindAllStringIndex(text, -1) {
		email := text[span[0]:span[1]]
		if anchoredEmailPattern.MatchString(email) {
			continue
		}

		findings = append(findings, Finding{
			Category:    CategoryEmail,
			Subtype:     "incomplete",
			MatchedText: email,
			Position:    span[0],
			Message:     "Incomplete email address",
			Suggestions: []string{"Complete the email address with proper domain"},
		})
	}

	return findings
}

// structuralIssues 检查单个邮箱形态子串的结构缺陷，返回全部命中的缺陷
func structuralIssues(email string) []string {
	var issues []string

	if strings.Contains(email, "..") {
		issues = append(issues, "Double dots in email")
	}
	if strings.HasPrefix(email, ".") || strings.HasPrefix(email, "-") {
		issues = append(issues, "Invalid character at start")
	}
	if strings.HasSuffix(email, ".") || strings.HasSuffix(email, "-") {
		issues = append(issues, "Invalid character at end")
	}
	if strings.Contains(email, "@.") || strings.Contains(email, ".@") {
		issues = append(issues, "Invalid dot placement around @")
	}

	switch atCount := strings.Count(email, "@"); {
	case atCount > 1:
		issues = append(issues, "Multiple @ symbols")
	case atCount == 0:
		issues = append(issues, "Missing @ symbol")
	default:
		domain := email[strings.Index(email, "@")+1:]
		switch {
		case len(domain) < 3:
			issues = append(issues, "Invalid or missing domain")
		case !strings.Contains(domain, "."):
			issues = append(issues, "Domain missing top-level domain")
		case strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, "."):
			issues = append(issues, "Invalid dot placement in domain")
		}
	}

	return issues
}
