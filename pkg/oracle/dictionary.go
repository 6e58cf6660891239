package oracle

import (
	"bufio"
	_ "embed"
	"os"
	"strings"

	"github.com/sajari/fuzzy"
)

//go:embed data/wordlist.txt
var defaultWordlist string

// FuzzyDictionary 基于 sajari/fuzzy 模型的词典 Oracle，
// 同时充当自动纠正 Oracle。进程启动时构建一次，之后只读。
type FuzzyDictionary struct {
	model *fuzzy.Model
	known map[string]struct{}
}

// NewFuzzyDictionary 从内置词表创建词典
func NewFuzzyDictionary() *FuzzyDictionary {
	d := newEmptyDictionary()
	d.trainLines(defaultWordlist)
	return d
}

// NewFuzzyDictionaryFromFile 从外部词表文件创建词典，
// 内置词表仍然作为基础加载。
func NewFuzzyDictionaryFromFile(path string) (*FuzzyDictionary, error) {
	d := newEmptyDictionary()
	d.trainLines(defaultWordlist)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		d.trainWord(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return d, nil
}

func newEmptyDictionary() *FuzzyDictionary {
	model := fuzzy.NewModel()
	// 深度 2 在精度和构建开销之间取得平衡
	model.SetDepth(2)
	model.SetThreshold(1)

	return &FuzzyDictionary{
		model: model,
		known: make(map[string]struct{}),
	}
}

func (d *FuzzyDictionary) trainLines(data string) {
	for _, line := range strings.Split(data, "\n") {
		d.trainWord(line)
	}
}

func (d *FuzzyDictionary) trainWord(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || strings.HasPrefix(word, "#") {
		return
	}
	d.model.TrainWord(word)
	d.known[word] = struct{}{}
}

// Contains 判断单词是否在词典中
func (d *FuzzyDictionary) Contains(word string) bool {
	if word == "" {
		return true
	}
	_, ok := d.known[strings.ToLower(word)]
	return ok
}

// Candidates 返回候选纠正词
func (d *FuzzyDictionary) Candidates(word string) []string {
	lower := strings.ToLower(word)
	if _, ok := d.known[lower]; ok {
		return nil
	}

	suggestions := d.model.Suggestions(lower, true)

	// 模型可能返回原词本身，过滤掉
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		if s != lower {
			out = append(out, s)
		}
	}
	return out
}

// Correct 返回最佳纠正结果，没有纠正时返回原词
func (d *FuzzyDictionary) Correct(word string) string {
	lower := strings.ToLower(word)
	if _, ok := d.known[lower]; ok {
		return word
	}

	correction := d.model.SpellCheck(lower)
	if correction == "" || correction == lower {
		return word
	}
	return correction
}

// Size 词典中的单词数
func (d *FuzzyDictionary) Size() int {
	return len(d.known)
}
