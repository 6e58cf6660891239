package oracle

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// LevenshteinSimilarity 基于编辑距离的模糊相似度 Oracle
type LevenshteinSimilarity struct{}

// NewLevenshteinSimilarity 创建相似度 Oracle
func NewLevenshteinSimilarity() *LevenshteinSimilarity {
	return &LevenshteinSimilarity{}
}

// Ratio 返回两个字符串的相似度，取值 [0,100]。
// 比较不区分大小写。
func (s *LevenshteinSimilarity) Ratio(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 100
	}

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 100
	}

	dist := fuzzy.LevenshteinDistance(a, b)
	ratio := 100 - (100*dist)/maxLen
	if ratio < 0 {
		ratio = 0
	}
	return ratio
}
