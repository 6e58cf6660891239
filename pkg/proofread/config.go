package proofread

// MistakeRule 常见语法错误规则：直接的查找替换，附带说明
type MistakeRule struct {
	Pattern    string `mapstructure:"pattern"`    // 正则表达式
	Correction string `mapstructure:"correction"` // 建议的替换
	Message    string `mapstructure:"message"`    // 给用户的说明
}

// FallbackRule AI 增强器的本地兜底规则，
// 远程模型没有返回结果时使用的高置信度已知错误
type FallbackRule struct {
	Pattern    string  `mapstructure:"pattern"`
	Correction string  `mapstructure:"correction"`
	Type       string  `mapstructure:"type"` // "spelling" 或 "grammar"
	Message    string  `mapstructure:"message"`
	Confidence float64 `mapstructure:"confidence"`
}

// SpellingConfig 拼写分析器配置
type SpellingConfig struct {
	// AllowList 不参与拼写检查的词（技术术语、常见专有名词），不区分大小写
	AllowList []string `mapstructure:"allow_list"`

	// DomainExtensions 域名后缀等 URL 片段，同样跳过
	DomainExtensions []string `mapstructure:"domain_extensions"`

	// CuratedTypos 人工整理的高频错拼表。
	// 经验调参得来（包含 lice→alice 这类看似古怪的条目），
	// 按配置表保留，不要试图推断更深的规律。
	CuratedTypos map[string]string `mapstructure:"curated_typos"`

	// MinTokenLength 短于该长度的 token 跳过
	MinTokenLength int `mapstructure:"min_token_length"`

	// MaxSuggestions 每个错误最多保留的建议数
	MaxSuggestions int `mapstructure:"max_suggestions"`

	// ConfidenceCap 置信度上限
	ConfidenceCap float64 `mapstructure:"confidence_cap"`

	// DefaultConfidence 没有任何建议时的置信度
	DefaultConfidence float64 `mapstructure:"default_confidence"`
}

// GrammarConfig 语法分析器配置
type GrammarConfig struct {
	// CommonMistakes 常见错误规则表：主谓一致与习语混淆
	CommonMistakes []MistakeRule `mapstructure:"common_mistakes"`
}

// AIConfig AI 增强器配置
type AIConfig struct {
	// Enabled 是否启用远程模型增强
	Enabled bool `mapstructure:"enabled"`

	// ChunkSize 发送给远程模型的单块最大字符数
	ChunkSize int `mapstructure:"chunk_size"`

	// FallbackRules 远程模型无结果时的本地兜底表
	FallbackRules []FallbackRule `mapstructure:"fallback_rules"`
}

// Config 校对服务配置
type Config struct {
	Spelling SpellingConfig `mapstructure:"spelling"`
	Grammar  GrammarConfig  `mapstructure:"grammar"`
	AI       AIConfig       `mapstructure:"ai"`

	// CorrectionThreshold 纠正文本时采纳拼写建议的置信度下限
	CorrectionThreshold float64 `mapstructure:"correction_threshold"`

	// HighConfidenceThreshold 汇总中计为高置信度的下限
	HighConfidenceThreshold float64 `mapstructure:"high_confidence_threshold"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Spelling: SpellingConfig{
			AllowList: []string{
				"API", "APIs", "HTTP", "HTTPS", "URL", "URLs", "JSON", "XML", "CSS", "HTML", "PDF", "PDFs",
				"AI", "ML", "IoT", "GPS", "USB", "CPU", "GPU", "RAM", "SSD", "HDD", "OS", "UI", "UX",
				"app", "apps", "email", "emails", "website", "websites", "online", "offline",
				"smartphone", "smartphones", "database", "databases", "username", "usernames",
				"WiFi", "Bluetooth", "login", "logout", "signup", "dropdown", "checkbox",
				"YAML", "NLP", "GPT", "OpenAI", "SDK", "IDE", "GUI", "TCP", "UDP", "DNS",
			},
			DomainExtensions: []string{
				"com", "org", "net", "edu", "gov", "mil", "int", "ai", "io", "co", "uk", "ca", "de", "fr",
				"www", "http", "https", "example",
			},
			CuratedTypos: map[string]string{
				"thiss":      "this",
				"teh":        "the",
				"documnt":    "document",
				"errros":     "errors",
				"analayzer":  "analyzer",
				"detectes":   "detects",
				"perfeclty":  "perfectly",
				"sugestions": "suggestions",
				"wich":       "which",
				"definately": "definitely",
				"recomend":   "recommend",
				"untill":     "until",
				"concludez":  "concludes",
				"containz":   "contains",
				"featuress":  "features",
				"challange":  "challenge",
				"smple":      "simple",
				"spelng":     "spelling",
				"analyz":     "analyze",
				"lice":       "alice",
			},
			MinTokenLength:    3,
			MaxSuggestions:    5,
			ConfidenceCap:     0.95,
			DefaultConfidence: 0.5,
		},
		Grammar: GrammarConfig{
			CommonMistakes: []MistakeRule{
				{Pattern: `\b[Ii]t contain\b`, Correction: "It contains", Message: "Subject-verb disagreement: should be 'It contains'"},
				{Pattern: `\b[Hh]e contain\b`, Correction: "He contains", Message: "Subject-verb disagreement: should be 'He contains'"},
				{Pattern: `\b[Ss]he don't\b`, Correction: "She doesn't", Message: "Subject-verb disagreement: should be 'She doesn't'"},
				{Pattern: `\b[Hh]e don't\b`, Correction: "He doesn't", Message: "Subject-verb disagreement: should be 'He doesn't'"},
				{Pattern: `\b[Ii]t don't\b`, Correction: "It doesn't", Message: "Subject-verb disagreement: should be 'It doesn't'"},
				{Pattern: `\b[Ww]ould of\b`, Correction: "would have", Message: "Should be 'would have', not 'would of'"},
				{Pattern: `\b[Cc]ould of\b`, Correction: "could have", Message: "Should be 'could have', not 'could of'"},
				{Pattern: `\b[Ss]hould of\b`, Correction: "should have", Message: "Should be 'should have', not 'should of'"},
				{Pattern: `\b[Yy]our welcome\b`, Correction: "you're welcome", Message: "Should be 'you're welcome'"},
				{Pattern: `\b[Tt]o much\b`, Correction: "too much", Message: "Should be 'too much'"},
				{Pattern: `\b[Tt]here house\b`, Correction: "their house", Message: "Should be 'their house'"},
			},
		},
		AI: AIConfig{
			Enabled:   false,
			ChunkSize: 2000,
			FallbackRules: []FallbackRule{
				{Pattern: `\bteh\b`, Correction: "the", Type: "spelling", Message: "Common typo: 'teh' should be 'the'", Confidence: 0.95},
				{Pattern: `\brecieve\b`, Correction: "receive", Type: "spelling", Message: "Common typo: 'recieve' should be 'receive'", Confidence: 0.95},
				{Pattern: `\bseperate\b`, Correction: "separate", Type: "spelling", Message: "Common typo: 'seperate' should be 'separate'", Confidence: 0.95},
				{Pattern: `\boccured\b`, Correction: "occurred", Type: "spelling", Message: "Common typo: 'occured' should be 'occurred'", Confidence: 0.9},
				{Pattern: `\b[Ww]ould of\b`, Correction: "would have", Type: "grammar", Message: "Should be 'would have', not 'would of'", Confidence: 0.9},
				{Pattern: `\b[Aa]longside with\b`, Correction: "alongside", Type: "grammar", Message: "'alongside' already implies 'with'", Confidence: 0.8},
			},
		},
		CorrectionThreshold:     0.7,
		HighConfidenceThreshold: 0.8,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Spelling.MaxSuggestions <= 0 {
		return WrapError(ErrInvalidConfig, ErrCodeConfig, "spelling.max_suggestions must be positive")
	}
	if c.Spelling.ConfidenceCap <= 0 || c.Spelling.ConfidenceCap > 1 {
		return WrapError(ErrInvalidConfig, ErrCodeConfig, "spelling.confidence_cap must be in (0,1]")
	}
	if c.CorrectionThreshold < 0 || c.CorrectionThreshold > 1 {
		return WrapError(ErrInvalidConfig, ErrCodeConfig, "correction_threshold must be in [0,1]")
	}
	if c.AI.Enabled && c.AI.ChunkSize <= 0 {
		return WrapError(ErrInvalidConfig, ErrCodeConfig, "ai.chunk_size must be positive when ai is enabled")
	}
	return nil
}

// Clone 复制配置，服务持有自己的副本
func (c *Config) Clone() *Config {
	clone := *c

	clone.Spelling.AllowList = append([]string(nil), c.Spelling.AllowList...)
	clone.Spelling.DomainExtensions = append([]string(nil), c.Spelling.DomainExtensions...)
	clone.Spelling.CuratedTypos = make(map[string]string, len(c.Spelling.CuratedTypos))
	for k, v := range c.Spelling.CuratedTypos {
		clone.Spelling.CuratedTypos[k] = v
	}
	clone.Grammar.CommonMistakes = append([]MistakeRule(nil), c.Grammar.CommonMistakes...)
	clone.AI.FallbackRules = append([]FallbackRule(nil), c.AI.FallbackRules...)

	return &clone
}
