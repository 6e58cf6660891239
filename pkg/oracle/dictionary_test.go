package oracle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyDictionary(t *testing.T) {
	dict := NewFuzzyDictionary()

	t.Run("ContainsKnownWords", func(t *testing.T) {
		assert.True(t, dict.Contains("the"))
		assert.True(t, dict.Contains("The"))
		assert.True(t, dict.Contains("contains"))
		assert.False(t, dict.Contains("xqzvk"))
	})

	t.Run("EmptyWordAccepted", func(t *testing.T) {
		assert.True(t, dict.Contains(""))
	})

	t.Run("CorrectKnownWordUnchanged", func(t *testing.T) {
		assert.Equal(t, "word", dict.Correct("word"))
		// 已知词保留调用方的大小写
		assert.Equal(t, "Word", dict.Correct("Word"))
	})

	t.Run("CorrectCloseTypo", func(t *testing.T) {
		assert.Equal(t, "the", dict.Correct("teh"))
	})

	t.Run("CandidatesForUnknownWord", func(t *testing.T) {
		candidates := dict.Candidates("teh")
		assert.Contains(t, candidates, "the")
	})

	t.Run("NoCandidatesForKnownWord", func(t *testing.T) {
		assert.Nil(t, dict.Candidates("word"))
	})

	t.Run("Size", func(t *testing.T) {
		assert.Greater(t, dict.Size(), 500)
	})
}

func TestFuzzyDictionaryFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.txt")
	require.NoError(t, os.WriteFile(path, []byte("zzyzx\n# comment line\nqwfp\n"), 0o644))

	dict, err := NewFuzzyDictionaryFromFile(path)
	require.NoError(t, err)

	// 外部词表在内置词表之上叠加
	assert.True(t, dict.Contains("zzyzx"))
	assert.True(t, dict.Contains("qwfp"))
	assert.True(t, dict.Contains("the"))
	assert.False(t, dict.Contains("# comment line"))
}

func TestFuzzyDictionaryFromFileMissing(t *testing.T) {
	_, err := NewFuzzyDictionaryFromFile("/nonexistent/wordlist.txt")
	assert.Error(t, err)
}

func TestLevenshteinSimilarity(t *testing.T) {
	sim := NewLevenshteinSimilarity()

	t.Run("Identical", func(t *testing.T) {
		assert.Equal(t, 100, sim.Ratio("kitten", "kitten"))
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, 100, sim.Ratio("Kitten", "kitten"))
	})

	t.Run("OneEdit", func(t *testing.T) {
		// 距离 1 / 长度 5
		assert.Equal(t, 80, sim.Ratio("thiss", "this"))
	})

	t.Run("CompletelyDifferent", func(t *testing.T) {
		assert.Equal(t, 0, sim.Ratio("abc", "xyz"))
	})
}
