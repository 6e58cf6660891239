package proofread_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/oracle"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newService(t *testing.T, opts ...proofread.Option) proofread.Service {
	t.Helper()

	dict := oracle.NewFuzzyDictionary()
	base := []proofread.Option{
		proofread.WithLogger(zap.NewNop()),
		proofread.WithDictionary(dict),
		proofread.WithAutocorrector(dict),
		proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()),
	}

	service, err := proofread.New(proofread.DefaultConfig(), append(base, opts...)...)
	require.NoError(t, err)
	return service
}

func TestServiceAnalyze(t *testing.T) {
	service := newService(t)

	t.Run("FullPipeline", func(t *testing.T) {
		model := &proofread.TextModel{
			RawText:    "Thiss is a test.  It contain errors.",
			Lines:      []string{"Thiss is a test.  It contain errors."},
			Paragraphs: []string{"Thiss is a test.  It contain errors."},
		}

		report, err := service.Analyze(context.Background(), model)
		require.NoError(t, err)

		assert.NotEmpty(t, report.AnalysisID)
		assert.Equal(t, len(model.RawText), report.TextLength)
		assert.Equal(t, 1, report.PagesCount)

		require.NotEmpty(t, report.SpellingErrors)
		assert.Equal(t, "Thiss", report.SpellingErrors[0].MatchedText)

		mistakes := findBySubtype(report.GrammarErrors, "common_mistake")
		require.Len(t, mistakes, 1)
		assert.Equal(t, "It contain", mistakes[0].MatchedText)

		assert.NotEmpty(t, findBySubtype(report.TypographyErrors, "multiple_spaces"))

		total := len(report.SpellingErrors) + len(report.GrammarErrors) +
			len(report.TypographyErrors) + len(report.StructureErrors) + len(report.EmailErrors)
		assert.Equal(t, total, report.TotalErrors)

		assert.Contains(t, report.CorrectedText, "This is a test.")
		assert.Contains(t, report.HighlightedText, `class="spelling-error"`)
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		_, err := service.Analyze(context.Background(), &proofread.TextModel{RawText: " \n\t "})
		require.Error(t, err)
		assert.ErrorIs(t, err, proofread.ErrNoReadableText)

		var analysisErr *proofread.AnalysisError
		require.ErrorAs(t, err, &analysisErr)
		assert.True(t, analysisErr.IsFatal())
	})

	t.Run("NilModel", func(t *testing.T) {
		_, err := service.Analyze(context.Background(), nil)
		assert.ErrorIs(t, err, proofread.ErrNoReadableText)
	})

	t.Run("DeterministicAcrossRuns", func(t *testing.T) {
		model := &proofread.TextModel{RawText: "Thiss is a the test. It contain errors."}

		first, err := service.Analyze(context.Background(), model)
		require.NoError(t, err)
		second, err := service.Analyze(context.Background(), model)
		require.NoError(t, err)

		assert.Equal(t, first.TotalErrors, second.TotalErrors)
		assert.Equal(t, first.CorrectedText, second.CorrectedText)
		assert.Equal(t, first.ErrorSummary, second.ErrorSummary)
	})
}

func TestServiceWithReadability(t *testing.T) {
	service := newService(t, proofread.WithReadability(stubReadability{}))

	report, err := service.Analyze(context.Background(), &proofread.TextModel{RawText: "Fine text."})
	require.NoError(t, err)
	assert.Equal(t, 42, report.Metrics.WordCount)
}

type stubReadability struct{}

func (stubReadability) Metrics(text string) proofread.Metrics {
	return proofread.Metrics{WordCount: 42}
}

func TestServiceWithProvider(t *testing.T) {
	t.Run("EnhancerMergesAIFindings", func(t *testing.T) {
		provider := &stubProvider{
			issues: []providers.Issue{
				{Type: "grammar", MatchedText: "was went", Message: "tense", Suggestions: []string{"went"}, Confidence: 0.9},
			},
			rewritten: "She went home.",
		}

		config := proofread.DefaultConfig()
		config.AI.Enabled = true

		dict := oracle.NewFuzzyDictionary()
		service, err := proofread.New(config,
			proofread.WithLogger(zap.NewNop()),
			proofread.WithDictionary(dict),
			proofread.WithAutocorrector(dict),
			proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()),
			proofread.WithProvider(provider))
		require.NoError(t, err)

		report, err := service.Analyze(context.Background(), &proofread.TextModel{RawText: "She was went home."})
		require.NoError(t, err)

		assert.NotEmpty(t, findBySubtype(report.GrammarErrors, "ai_suggested"))
		// 纠正文本经过重写趟
		assert.Equal(t, "She went home.", report.CorrectedText)
	})

	t.Run("ProviderFailureDoesNotFailAnalysis", func(t *testing.T) {
		provider := &stubProvider{
			analyzeErr: errors.New("rate limited"),
			rewriteErr: errors.New("rate limited"),
		}

		config := proofread.DefaultConfig()
		config.AI.Enabled = true

		dict := oracle.NewFuzzyDictionary()
		service, err := proofread.New(config,
			proofread.WithLogger(zap.NewNop()),
			proofread.WithDictionary(dict),
			proofread.WithAutocorrector(dict),
			proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()),
			proofread.WithProvider(provider))
		require.NoError(t, err)

		report, err := service.Analyze(context.Background(), &proofread.TextModel{RawText: "A clean sentence here."})
		require.NoError(t, err)
		assert.NotNil(t, report)
	})
}

func TestServiceConstruction(t *testing.T) {
	t.Run("MissingOracle", func(t *testing.T) {
		_, err := proofread.New(proofread.DefaultConfig(), proofread.WithLogger(zap.NewNop()))
		assert.ErrorIs(t, err, proofread.ErrMissingOracle)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		config := proofread.DefaultConfig()
		config.Spelling.MaxSuggestions = 0

		dict := oracle.NewFuzzyDictionary()
		_, err := proofread.New(config,
			proofread.WithDictionary(dict),
			proofread.WithAutocorrector(dict),
			proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()))
		assert.ErrorIs(t, err, proofread.ErrInvalidConfig)
	})

	t.Run("NilConfigUsesDefaults", func(t *testing.T) {
		dict := oracle.NewFuzzyDictionary()
		service, err := proofread.New(nil,
			proofread.WithDictionary(dict),
			proofread.WithAutocorrector(dict),
			proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()))
		require.NoError(t, err)
		assert.NotNil(t, service)
	})
}
