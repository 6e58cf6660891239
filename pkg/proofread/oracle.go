package proofread

// Dictionary 词典 Oracle。核心只查询，不负责实现。
type Dictionary interface {
	// Contains 判断单词是否在词典中
	Contains(word string) bool

	// Candidates 返回候选纠正词
	Candidates(word string) []string
}

// Autocorrector 自动纠正 Oracle。召回率高于词典查询，
// 即使词典接受了某个单词，它给出不同结果时仍视为拼写错误。
type Autocorrector interface {
	// Correct 返回最佳纠正结果，没有纠正时返回原词
	Correct(word string) string
}

// Similarity 模糊相似度 Oracle
type Similarity interface {
	// Ratio 返回两个字符串的相似度，取值 [0,100]
	Ratio(a, b string) int
}

// Readability 可读性指标 Oracle
type Readability interface {
	// Metrics 计算文本的可读性指标
	Metrics(text string) Metrics
}
