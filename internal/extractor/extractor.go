package extractor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"go.uber.org/zap"
)

// Extractor 文本提取器：按扩展名分派到对应的解析器，
// 并把结果规范化为统一的 TextModel。
type Extractor struct {
	logger *zap.Logger
}

// New 创建文本提取器
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// SupportedExtensions 支持的文件扩展名
func SupportedExtensions() []string {
	return []string{".pdf", ".docx", ".txt"}
}

// IsSupported 判断文件名是否受支持
func IsSupported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// Extract 从文件提取文本模型
func (e *Extractor) Extract(path string) (*proofread.TextModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, proofread.WrapError(proofread.ErrExtractionFailure,
			proofread.ErrCodeExtraction, fmt.Sprintf("failed to read file: %v", err))
	}
	return e.ExtractBytes(data, path)
}

// ExtractBytes 从内存字节提取文本模型，按文件名扩展名分派
func (e *Extractor) ExtractBytes(data []byte, filename string) (*proofread.TextModel, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		raw   string
		pages []proofread.Page
		err   error
	)

	switch ext {
	case ".pdf":
		raw, pages, err = e.extractPDF(data)
	case ".docx":
		raw, err = e.extractDocx(data)
	case ".txt":
		raw = string(data)
	default:
		return nil, proofread.WrapError(proofread.ErrExtractionFailure,
			proofread.ErrCodeExtraction, fmt.Sprintf("unsupported file type: %s", ext))
	}

	if err != nil {
		e.logger.Error("text extraction failed",
			zap.String("file", filename), zap.Error(err))
		return nil, proofread.WrapError(proofread.ErrExtractionFailure,
			proofread.ErrCodeExtraction, err.Error())
	}

	model := buildModel(raw, pages)
	e.logger.Debug("text extracted",
		zap.String("file", filename),
		zap.Int("length", len(model.RawText)),
		zap.Int("lines", len(model.Lines)),
		zap.Int("pages", len(model.Pages)))

	return model, nil
}

// buildModel 规范化为文本模型：行为非空去空白行，
// 段落为长度超过 20 字符的行
func buildModel(raw string, pages []proofread.Page) *proofread.TextModel {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")

	var lines, paragraphs []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, trimmed)
		if len(trimmed) > 20 {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	if lines == nil {
		lines = []string{}
	}
	if paragraphs == nil {
		paragraphs = []string{}
	}
	if pages == nil {
		pages = []proofread.Page{}
	}

	return &proofread.TextModel{
		RawText:    raw,
		Lines:      lines,
		Paragraphs: paragraphs,
		Pages:      pages,
	}
}
