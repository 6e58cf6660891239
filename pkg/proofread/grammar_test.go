package proofread_test

import (
	"testing"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGrammarAnalyzer() *proofread.GrammarAnalyzer {
	return proofread.NewGrammarAnalyzer(proofread.DefaultConfig().Grammar, zap.NewNop())
}

func findBySubtype(findings []proofread.Finding, subtype string) []proofread.Finding {
	var out []proofread.Finding
	for _, f := range findings {
		if f.Subtype == subtype {
			out = append(out, f)
		}
	}
	return out
}

func TestGrammarAnalyzer(t *testing.T) {
	analyzer := newGrammarAnalyzer()

	t.Run("RepeatedWord", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("I saw the the cat."))

		repeated := findBySubtype(findings, "repeated_word")
		require.Len(t, repeated, 1)
		assert.Equal(t, "the the", repeated[0].MatchedText)
		assert.Equal(t, []string{"the"}, repeated[0].Suggestions)
		assert.Equal(t, proofread.SeverityMedium, repeated[0].Severity)
		assert.Equal(t, 6, repeated[0].Position)
	})

	t.Run("RepeatedWordCaseInsensitive", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("The the plan worked."))
		assert.Len(t, findBySubtype(findings, "repeated_word"), 1)
	})

	t.Run("SubjectVerbDisagreement", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("It contain errors."))

		mistakes := findBySubtype(findings, "common_mistake")
		require.Len(t, mistakes, 1)
		assert.Equal(t, "It contain", mistakes[0].MatchedText)
		assert.Equal(t, []string{"It contains"}, mistakes[0].Suggestions)
		assert.Equal(t, proofread.SeverityHigh, mistakes[0].Severity)
	})

	t.Run("WouldOf", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("He would of gone home."))

		mistakes := findBySubtype(findings, "common_mistake")
		require.Len(t, mistakes, 1)
		assert.Equal(t, []string{"would have"}, mistakes[0].Suggestions)
	})

	t.Run("MissingArticle", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("Document is important for the review."))

		missing := findBySubtype(findings, "missing_article")
		require.Len(t, missing, 1)
		assert.Equal(t, "Document is important", missing[0].MatchedText)
		assert.Equal(t, []string{"The document is important"}, missing[0].Suggestions)
	})

	t.Run("MissingArticleNotFlaggedWithArticle", func(t *testing.T) {
		// 前面已有冠词时不命中
		findings := analyzer.Analyze(modelFromText("The Document is important for the review."))
		assert.Empty(t, findBySubtype(findings, "missing_article"))
	})

	t.Run("CleanText", func(t *testing.T) {
		findings := analyzer.Analyze(modelFromText("She writes clean prose without mistakes."))
		assert.Empty(t, findings)
	})

	t.Run("EmptyModel", func(t *testing.T) {
		assert.Nil(t, analyzer.Analyze(nil))
	})
}
