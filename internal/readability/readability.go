package readability

import (
	"strings"
	"unicode"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
)

// Calculator 可读性计算器：实现四个经典可读性公式与基础统计。
// 音节数采用元音组计数启发式，足以支撑指标的相对比较。
type Calculator struct{}

// NewCalculator 创建可读性计算器
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Metrics 计算全文的可读性指标。文本为空时返回零值。
func (c *Calculator) Metrics(text string) proofread.Metrics {
	words := splitWords(text)
	sentences := countSentences(text)
	paragraphs := countParagraphs(text)

	m := proofread.Metrics{
		WordCount:      len(words),
		SentenceCount:  sentences,
		ParagraphCount: paragraphs,
	}

	if len(words) == 0 || sentences == 0 {
		return m
	}

	var syllables, letters int
	for _, w := range words {
		syllables += countSyllables(w)
		letters += countLetters(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))
	lettersPerWord := float64(letters) / float64(len(words))

	m.AvgWordsPerSentence = round2(wordsPerSentence)
	m.FleschReadingEase = round2(206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord)
	m.FleschKincaidGrade = round2(0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59)
	m.AutomatedReadabilityIndex = round2(4.71*lettersPerWord + 0.5*wordsPerSentence - 21.43)

	// Coleman-Liau 以每 100 词的字母数与句子数为输入
	l := lettersPerWord * 100
	s := float64(sentences) / float64(len(words)) * 100
	m.ColemanLiauIndex = round2(0.0588*l - 0.296*s - 15.8)

	return m
}

// splitWords 提取含字母的 token 作为词
func splitWords(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.IndexFunc(f, unicode.IsLetter) >= 0 {
			words = append(words, f)
		}
	}
	return words
}

// countSentences 以 .!? 的连续串计一个句子，至少为 1
func countSentences(text string) int {
	count := 0
	inTerminator := false
	hasContent := false

	for _, r := range text {
		switch {
		case r == '.' || r == '!' || r == '?':
			if !inTerminator && hasContent {
				count++
			}
			inTerminator = true
		case unicode.IsSpace(r):
			inTerminator = false
		default:
			inTerminator = false
			hasContent = true
		}
	}

	if count == 0 && hasContent {
		return 1
	}
	return count
}

// countParagraphs 空行分隔的非空块
func countParagraphs(text string) int {
	count := 0
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) != "" {
			count++
		}
	}
	return count
}

// countSyllables 元音组启发式：连续元音计一个音节，
// 词尾的静音 e 不计，至少为 1
func countSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}
	if count == 0 {
		count = 1
	}
	return count
}

func countLetters(word string) int {
	count := 0
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

func round2(v float64) float64 {
	if v < 0 {
		return float64(int(v*100-0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
