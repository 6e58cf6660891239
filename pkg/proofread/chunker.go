package proofread

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SentenceChunker 按句子边界分块，块大小受字符预算约束，
// 不在句子中间切分。用于限制发给远程模型的单次文本量。
type SentenceChunker struct {
	budget int
}

// NewSentenceChunker 创建分块器
func NewSentenceChunker(budget int) *SentenceChunker {
	if budget <= 0 {
		budget = 2000
	}
	return &SentenceChunker{budget: budget}
}

// Budget 返回字符预算
func (c *SentenceChunker) Budget() int {
	return c.budget
}

// Chunk 将文本分块
func (c *SentenceChunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	// 文本不超过预算时直接返回
	if utf8.RuneCountInString(text) <= c.budget {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	currentSize := 0

	for _, sentence := range splitSentences(text) {
		sentenceSize := utf8.RuneCountInString(sentence)

		// 单个句子超过预算时强制按字符切分
		if sentenceSize > c.budget {
			if current.Len() > 0 {
				chunks = append(chunks, strings.TrimSpace(current.String()))
				current.Reset()
				currentSize = 0
			}
			chunks = append(chunks, c.forceChunk(sentence)...)
			continue
		}

		if currentSize > 0 && currentSize+sentenceSize+1 > c.budget {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
			currentSize = 0
		}

		if current.Len() > 0 {
			current.WriteString(" ")
			currentSize++
		}
		current.WriteString(sentence)
		currentSize += sentenceSize
	}

	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// splitSentences 按句子结束符分割文本
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)

	for i, r := range runes {
		current.WriteRune(r)

		if !isSentenceEnd(r) {
			continue
		}
		// 结束符后是空白或文本末尾才算句子结束
		if i+1 >= len(runes) || unicode.IsSpace(runes[i+1]) {
			sentence := strings.TrimSpace(current.String())
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			current.Reset()
		}
	}

	if current.Len() > 0 {
		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

// isSentenceEnd 判断是否是句子结束符
func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// forceChunk 强制按字符分块
func (c *SentenceChunker) forceChunk(text string) []string {
	var chunks []string
	runes := []rune(text)

	for i := 0; i < len(runes); i += c.budget {
		end := i + c.budget
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
	}

	return chunks
}
