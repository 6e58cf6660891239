package proofread

// Category 错误类别
type Category string

// 支持的错误类别
const (
	CategorySpelling   Category = "spelling"
	CategoryGrammar    Category = "grammar"
	CategoryTypography Category = "typography"
	CategoryStructure  Category = "structure"
	CategoryEmail      Category = "email"
	CategoryAI         Category = "ai"
)

// Severity 错误严重程度
type Severity string

// 支持的严重程度
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Finding 单个检测结果
type Finding struct {
	Category    Category `json:"category"`              // 错误类别
	Subtype     string   `json:"subtype,omitempty"`     // 类别内的细分类型，如 missing_space
	MatchedText string   `json:"matchedText"`           // 原文中被标记的子串
	Position    int      `json:"position"`              // 在原文中首次出现的偏移量，-1 表示未知
	Message     string   `json:"message"`               // 人类可读的说明
	Suggestions []string `json:"suggestions,omitempty"` // 按置信度降序排列的候选替换，最多 5 个
	Confidence  float64  `json:"confidence,omitempty"`  // 置信度 [0,1]，部分类别不提供
	Severity    Severity `json:"severity,omitempty"`    // 严重程度，部分类别不提供
	Context     string   `json:"context,omitempty"`     // 首次出现位置前后的上下文片段
}

// Page 分页来源的单页文本
type Page struct {
	PageNumber int      `json:"pageNumber"`
	Text       string   `json:"text"`
	Lines      []string `json:"lines"`
}

// TextModel 文档文本的规范化内存表示，单次分析内不可变
type TextModel struct {
	RawText    string   `json:"rawText"`    // 完整文档文本，按换行符连接
	Lines      []string `json:"lines"`      // 非空的去空白行
	Paragraphs []string `json:"paragraphs"` // 长度超过 20 字符、判定为段落的行
	Pages      []Page   `json:"pages"`      // 仅分页来源（PDF）存在
}

// IsEmpty 判断文本模型是否没有可读文本
func (t *TextModel) IsEmpty() bool {
	for _, r := range t.RawText {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// Metrics 可读性指标，由可读性 Oracle 计算
type Metrics struct {
	WordCount                 int     `json:"wordCount"`
	SentenceCount             int     `json:"sentenceCount"`
	ParagraphCount            int     `json:"paragraphCount"`
	AvgWordsPerSentence       float64 `json:"avgWordsPerSentence"`
	FleschReadingEase         float64 `json:"fleschReadingEase"`
	FleschKincaidGrade        float64 `json:"fleschKincaidGrade"`
	AutomatedReadabilityIndex float64 `json:"automatedReadabilityIndex"`
	ColemanLiauIndex          float64 `json:"colemanLiauIndex"`
}

// CategorySummary 单个类别的汇总
type CategorySummary struct {
	Count          int `json:"count"`
	HighConfidence int `json:"highConfidence,omitempty"` // 置信度 > 0.8 的拼写错误数
	HighSeverity   int `json:"highSeverity,omitempty"`   // 高严重度的语法错误数
	Formatting     int `json:"formatting,omitempty"`     // formatting 子类的排版错误数
	InvalidFormat  int `json:"invalidFormat,omitempty"`  // invalid_format 子类的邮箱错误数
}

// ErrorSummary 按类别的错误汇总
type ErrorSummary struct {
	Spelling   CategorySummary `json:"spelling"`
	Grammar    CategorySummary `json:"grammar"`
	Typography CategorySummary `json:"typography"`
	Structure  CategorySummary `json:"structure"`
	Email      CategorySummary `json:"email"`
}

// AnalysisReport 单次分析的聚合结果
type AnalysisReport struct {
	AnalysisID       string       `json:"analysisId"`
	TextLength       int          `json:"textLength"`
	PagesCount       int          `json:"pagesCount"` // 非分页来源固定为 1
	ParagraphsCount  int          `json:"paragraphsCount"`
	SpellingErrors   []Finding    `json:"spellingErrors"`
	GrammarErrors    []Finding    `json:"grammarErrors"`
	TypographyErrors []Finding    `json:"typographyErrors"`
	StructureErrors  []Finding    `json:"structureErrors"`
	EmailErrors      []Finding    `json:"emailErrors"`
	TotalErrors      int          `json:"totalErrors"`
	Metrics          Metrics      `json:"metrics"`
	CorrectedText    string       `json:"correctedText"`
	HighlightedText  string       `json:"highlightedText"`
	ErrorSummary     ErrorSummary `json:"errorSummary"`
}
