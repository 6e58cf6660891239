package proofread

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/zap"
)

var (
	tokenPattern     = regexp.MustCompile(`\w+`)
	urlPrefixPattern = regexp.MustCompile(`(?i)^(https?|www|com|org|net|gov|edu)`)
	urlSpanPattern   = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+|\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\b|\b[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)+\b)`)
)

// 可能是打字错误的双写字母
var doubledLetterPairs = []string{"ss", "ll", "nn", "mm", "tt", "pp", "dd", "ff", "gg"}

// 纠正尝试用的高频字母混淆
var letterConfusions = [][2]string{
	{"z", "s"},
	{"ei", "ie"},
	{"ie", "ei"},
}

// SpellingAnalyzer 拼写分析器：词典查询、模式启发、Oracle 建议
// 与模糊排序的分层判定
type SpellingAnalyzer struct {
	config      SpellingConfig
	dictionary  Dictionary
	autocorrect Autocorrector
	similarity  Similarity
	logger      *zap.Logger

	allow   map[string]struct{}
	domains map[string]struct{}
}

// NewSpellingAnalyzer 创建拼写分析器
func NewSpellingAnalyzer(config SpellingConfig, dictionary Dictionary, autocorrect Autocorrector, similarity Similarity, logger *zap.Logger) *SpellingAnalyzer {
	allow := make(map[string]struct{}, len(config.AllowList))
	for _, w := range config.AllowList {
		allow[strings.ToLower(w)] = struct{}{}
	}
	domains := make(map[string]struct{}, len(config.DomainExtensions))
	for _, w := range config.DomainExtensions {
		domains[strings.ToLower(w)] = struct{}{}
	}

	return &SpellingAnalyzer{
		config:      config,
		dictionary:  dictionary,
		autocorrect: autocorrect,
		similarity:  similarity,
		logger:      logger,
		allow:       allow,
		domains:     domains,
	}
}

// Analyze 返回去重后的拼写错误列表，每个问题 token 一条，
// 取首次出现的位置与上下文。
func (a *SpellingAnalyzer) Analyze(model *TextModel) []Finding {
	if model == nil || model.IsEmpty() {
		return nil
	}

	text := model.RawText
	tokenSpans := tokenPattern.FindAllStringIndex(text, -1)
	urlSpans := urlSpanPattern.FindAllStringIndex(text, -1)

	// 大小写敏感的出现次数，用于专有名词启发
	occurrences := make(map[string]int, len(tokenSpans))
	for _, span := range tokenSpans {
		occurrences[text[span[0]:span[1]]]++
	}

	var findings []Finding
	seen := make(map[string]struct{})

	for _, span := range tokenSpans {
		token := text[span[0]:span[1]]
		lower := strings.ToLower(token)

		if _, dup := seen[lower]; dup {
			continue
		}
		if a.shouldSkip(token, lower, span[0], urlSpans, occurrences) {
			continue
		}

		misspelled, suggestions := a.evaluate(token, lower)
		if !misspelled {
			continue
		}

		seen[lower] = struct{}{}

		ranked := a.rankSuggestions(token, suggestions)
		findings = append(findings, Finding{
			Category:    CategorySpelling,
			Subtype:     "misspelling",
			MatchedText: token,
			Position:    span[0],
			Message:     "Possible misspelling of '" + token + "'",
			Suggestions: ranked,
			Confidence:  a.confidence(token, ranked),
			Context:     snippet(text, span[0], span[1], 50),
		})
	}

	return findings
}

// shouldSkip 判断 token 是否跳过检查
func (a *SpellingAnalyzer) shouldSkip(token, lower string, pos int, urlSpans [][]int, occurrences map[string]int) bool {
	if len([]rune(token)) < a.config.MinTokenLength {
		return true
	}
	if _, ok := a.allow[lower]; ok {
		return true
	}
	if _, ok := a.domains[lower]; ok {
		return true
	}
	if isNumeric(token) {
		return true
	}
	if urlPrefixPattern.MatchString(token) {
		return true
	}
	// 落在 URL/邮箱跨度内的 token 不检查
	for _, span := range urlSpans {
		if pos >= span[0] && pos < span[1] {
			return true
		}
	}
	// 专有名词启发：首字母大写、非全大写、在文档中出现多次
	if isCapitalized(token) && !isAllUpper(token) && occurrences[token] > 1 {
		return true
	}
	return false
}

// evaluate 分层判定 token 是否拼错，并收集各来源的建议。
// 词典认识的词只受自动纠正 Oracle 的异议，
// 模式启发仅对词典不认识的词生效。
func (a *SpellingAnalyzer) evaluate(token, lower string) (bool, []string) {
	// 人工整理的错拼表优先级最高
	if fix, ok := a.config.CuratedTypos[lower]; ok {
		return true, []string{fix}
	}

	if a.dictionary.Contains(lower) {
		if auto := a.autocorrect.Correct(token); !strings.EqualFold(auto, token) {
			return true, []string{auto}
		}
		return false, nil
	}

	misspelled := true
	var suggestions []string

	candidates := a.dictionary.Candidates(token)
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	suggestions = append(suggestions, candidates...)

	if auto := a.autocorrect.Correct(token); !strings.EqualFold(auto, token) {
		suggestions = append(suggestions, auto)
	}

	// 双写字母与连续重复启发生成的候选经词典验证
	suggestions = append(suggestions, a.patternSuggestions(lower)...)

	// 所有来源都没有候选时，做一次纠正尝试
	if len(suggestions) == 0 {
		suggestions = a.correctionAttempts(lower)
	}

	return misspelled, suggestions
}

// patternSuggestions 基于双写字母模式生成候选，经词典验证
func (a *SpellingAnalyzer) patternSuggestions(lower string) []string {
	var out []string

	if len(lower) > 3 {
		for _, suffix := range []string{"ss", "ll"} {
			if strings.HasSuffix(lower, suffix) {
				if candidate := lower[:len(lower)-1]; a.dictionary.Contains(candidate) {
					out = append(out, candidate)
				}
			}
		}
	}

	for _, pair := range doubledLetterPairs {
		if strings.Contains(lower, pair) {
			if candidate := strings.Replace(lower, pair, pair[:1], 1); a.dictionary.Contains(candidate) {
				out = append(out, candidate)
			}
		}
	}

	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// correctionAttempts 次级纠正生成器：去掉末位字符、替换常见词尾、
// 替换高频字母混淆。产物必须重新通过词典验证才被接受。
func (a *SpellingAnalyzer) correctionAttempts(lower string) []string {
	var out []string

	try := func(candidate string) {
		if candidate != "" && candidate != lower && a.dictionary.Contains(candidate) {
			out = append(out, candidate)
		}
	}

	if len(lower) > 3 {
		try(lower[:len(lower)-1])
	}

	for _, swap := range letterConfusions {
		if strings.Contains(lower, swap[0]) {
			try(strings.Replace(lower, swap[0], swap[1], 1))
		}
	}

	// 连续重复字母折叠到一个
	try(collapseRepeats(lower))

	return out
}

// rankSuggestions 合并各来源建议，大小写无关去重，
// 按与原 token 的相似度降序排序并截断。
func (a *SpellingAnalyzer) rankSuggestions(token string, suggestions []string) []string {
	seen := make(map[string]struct{}, len(suggestions))
	unique := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, s)
	}

	// 稳定排序保证相同输入下顺序确定
	sort.SliceStable(unique, func(i, j int) bool {
		return a.similarity.Ratio(token, unique[i]) > a.similarity.Ratio(token, unique[j])
	})

	if len(unique) > a.config.MaxSuggestions {
		unique = unique[:a.config.MaxSuggestions]
	}
	return unique
}

// confidence 置信度为最高建议相似度/100，封顶；无建议时用默认值
func (a *SpellingAnalyzer) confidence(token string, suggestions []string) float64 {
	if len(suggestions) == 0 {
		return a.config.DefaultConfidence
	}

	best := 0
	for _, s := range suggestions {
		if r := a.similarity.Ratio(token, s); r > best {
			best = r
		}
	}

	confidence := float64(best) / 100.0
	if confidence > a.config.ConfidenceCap {
		confidence = a.config.ConfidenceCap
	}
	return confidence
}

// snippet 截取位置前后的上下文片段
func snippet(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	// 避免切断多字节字符
	for from > 0 && !isRuneStart(text[from]) {
		from--
	}
	for to < len(text) && !isRuneStart(text[to]) {
		to++
	}
	return text[from:to]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func isCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

// collapseRepeats 把连续重复的字母折叠为单个
func collapseRepeats(s string) string {
	var b strings.Builder
	var prev rune = -1
	for _, r := range s {
		if r != prev {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}
