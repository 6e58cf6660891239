package proofread

import (
	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	"go.uber.org/zap"
)

// Option 服务选项
type Option func(*serviceOptions)

type serviceOptions struct {
	logger      *zap.Logger
	dictionary  Dictionary
	autocorrect Autocorrector
	similarity  Similarity
	readability Readability
	provider    providers.Provider
}

// WithLogger 设置日志器
func WithLogger(logger *zap.Logger) Option {
	return func(o *serviceOptions) {
		o.logger = logger
	}
}

// WithDictionary 设置词典 Oracle
func WithDictionary(dictionary Dictionary) Option {
	return func(o *serviceOptions) {
		o.dictionary = dictionary
	}
}

// WithAutocorrector 设置自动纠错 Oracle
func WithAutocorrector(autocorrect Autocorrector) Option {
	return func(o *serviceOptions) {
		o.autocorrect = autocorrect
	}
}

// WithSimilarity 设置相似度 Oracle
func WithSimilarity(similarity Similarity) Option {
	return func(o *serviceOptions) {
		o.similarity = similarity
	}
}

// WithReadability 设置可读性 Oracle
func WithReadability(readability Readability) Option {
	return func(o *serviceOptions) {
		o.readability = readability
	}
}

// WithProvider 设置远程模型提供商，启用 AI 增强与重写趟
func WithProvider(provider providers.Provider) Option {
	return func(o *serviceOptions) {
		o.provider = provider
	}
}
