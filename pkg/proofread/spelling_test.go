package proofread_test

import (
	"testing"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/oracle"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSpellingAnalyzer(t *testing.T) *proofread.SpellingAnalyzer {
	t.Helper()
	dict := oracle.NewFuzzyDictionary()
	return proofread.NewSpellingAnalyzer(proofread.DefaultConfig().Spelling,
		dict, dict, oracle.NewLevenshteinSimilarity(), zap.NewNop())
}

func modelFromText(text string) *proofread.TextModel {
	return &proofread.TextModel{RawText: text}
}

func TestSpellingAnalyzer(t *testing.T) {
	analyzer := newSpellingAnalyzer(t)

	t.Run("CuratedTypo", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("Thiss is a short test."))

		require.Len(t, findings, 1)
		f := findings[0]
		assert.Equal(t, proofread.CategorySpelling, f.Category)
		assert.Equal(t, "misspelling", f.Subtype)
		assert.Equal(t, "Thiss", f.MatchedText)
		assert.Equal(t, 0, f.Position)
		require.NotEmpty(t, f.Suggestions)
		assert.Equal(t, "this", f.Suggestions[0])
		// 编辑距离 1 / 长度 5
		assert.InDelta(t, 0.8, f.Confidence, 0.001)
		assert.Contains(t, f.Context, "Thiss")
	})

	t.Run("CleanText", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("The quick brown fox jumps over the lazy dog."))
		assert.Empty(t, findings)
	})

	t.Run("AllowListSkipped", func(t *testing.T) {
		// 技术术语不参与拼写检查
		findings := analyzer.Analyze(modelFromText("The API and the JSON format and the smartphone work."))
		assert.Empty(t, findings)
	})

	t.Run("URLAndEmailSkipped", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("Visit https://xqzvk.example/path or mail xqzvk@example.com today."))
		for _, f := range findings {
			assert.NotContains(t, f.MatchedText, "xqzvk")
		}
	})

	t.Run("ProperNounRepeatedSkipped", func(t *testing.T) {
		// 首字母大写且出现多次的 token 按专有名词处理
		findings := analyzer.Analyze(modelFromText("Grendorf visited the town. Grendorf stayed there."))
		for _, f := range findings {
			assert.NotEqual(t, "Grendorf", f.MatchedText)
		}
	})

	t.Run("ShortTokensSkipped", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("xq zz ab cd"))
		assert.Empty(t, findings)
	})

	t.Run("DedupeRepeatedTypo", func(t *testing.T) {
		// 同一个错拼 token 只上报一次，取首次出现的位置
		findings := analyzer.Analyze(modelFromText("teh word and teh word again"))

		require.Len(t, findings, 1)
		assert.Equal(t, "teh", findings[0].MatchedText)
		assert.Equal(t, 0, findings[0].Position)
	})

	t.Run("SuggestionLimit", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("The documnt has problems."))

		require.NotEmpty(t, findings)
		for _, f := range findings {
			assert.LessOrEqual(t, len(f.Suggestions), 5)
			assert.LessOrEqual(t, f.Confidence, 0.95)
		}
	})

	t.Run("EmptyModel", func(t *testing.T) {
		assert.Nil(t, analyzer.Analyze(modelFromText("   \n\t ")))
		assert.Nil(t, analyzer.Analyze(nil))
	})
}
