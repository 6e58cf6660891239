package proofread

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service 校对服务：编排多趟分析流水线
type Service interface {
	// Analyze 分析一份文本模型并返回聚合报告
	Analyze(ctx context.Context, model *TextModel) (*AnalysisReport, error)
}

type service struct {
	config     *Config
	spelling   *SpellingAnalyzer
	grammar    *GrammarAnalyzer
	typography *TypographyAnalyzer
	structure  *StructureAnalyzer
	email      *EmailValidator
	enhancer   *AIEnhancer
	aggregator *ErrorAggregator
	metrics    Readability
	logger     *zap.Logger
}

// New 创建校对服务。词典、自动纠错与相似度 Oracle 必须注入；
// 可读性 Oracle 与远程模型提供商可选，缺席时对应字段为零值/跳过。
func New(config *Config, opts ...Option) (Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	options := serviceOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	if options.logger == nil {
		options.logger = zap.NewNop()
	}
	if options.dictionary == nil || options.autocorrect == nil || options.similarity == nil {
		return nil, ErrMissingOracle
	}

	s := &service{
		config: config,
		spelling: NewSpellingAnalyzer(config.Spelling,
			options.dictionary, options.autocorrect, options.similarity, options.logger),
		grammar:    NewGrammarAnalyzer(config.Grammar, options.logger),
		typography: NewTypographyAnalyzer(),
		structure:  NewStructureAnalyzer(),
		email:      NewEmailValidator(),
		aggregator: NewErrorAggregator(config),
		metrics:    options.readability,
		logger:     options.logger,
	}

	if config.AI.Enabled && options.provider != nil {
		s.enhancer = NewAIEnhancer(config.AI, options.provider, options.logger)
	}

	return s, nil
}

// Analyze 分析流程：五个确定性分析器并发运行，各自写入固定槽位；
// 可选的 AI 结果按声明类型并入拼写/语法；聚合后生成两份派生文本，
// 其中纠正文本在提供商可用时追加一趟全文重写。
func (s *service) Analyze(ctx context.Context, model *TextModel) (*AnalysisReport, error) {
	if model == nil || model.IsEmpty() {
		return nil, WrapError(ErrNoReadableText, ErrCodeNoText, "document contains no readable text")
	}

	start := time.Now()

	var (
		wg         sync.WaitGroup
		spelling   []Finding
		grammar    []Finding
		typography []Finding
		structure  []Finding
		email      []Finding
	)

	wg.Add(5)
	go func() { defer wg.Done(); spelling = s.spelling.Analyze(model) }()
	go func() { defer wg.Done(); grammar = s.grammar.Analyze(model) }()
	go func() { defer wg.Done(); typography = s.typography.Analyze(model) }()
	go func() { defer wg.Done(); structure = s.structure.Analyze(model) }()
	go func() { defer wg.Done(); email = s.email.Analyze(model) }()
	wg.Wait()

	if s.enhancer != nil {
		aiSpelling, aiGrammar := s.enhancer.Enhance(ctx, model.RawText)
		spelling = append(spelling, aiSpelling...)
		grammar = append(grammar, aiGrammar...)
	}

	report := s.aggregator.BuildReport(model, spelling, grammar, typography, structure, email)
	report.AnalysisID = uuid.New().String()

	if s.enhancer != nil {
		report.CorrectedText = s.enhancer.RewriteText(ctx, report.CorrectedText)
	}

	if s.metrics != nil {
		report.Metrics = s.metrics.Metrics(model.RawText)
	}

	s.logger.Info("analysis completed",
		zap.String("analysis_id", report.AnalysisID),
		zap.Int("text_length", report.TextLength),
		zap.Int("total_errors", report.TotalErrors),
		zap.Duration("duration", time.Since(start)))

	return report, nil
}
