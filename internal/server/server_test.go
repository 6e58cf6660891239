package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerdneilsfield/go-proofread-agent/internal/config"
	"github.com/nerdneilsfield/go-proofread-agent/internal/extractor"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/oracle"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dict := oracle.NewFuzzyDictionary()
	service, err := proofread.New(proofread.DefaultConfig(),
		proofread.WithLogger(zap.NewNop()),
		proofread.WithDictionary(dict),
		proofread.WithAutocorrector(dict),
		proofread.WithSimilarity(oracle.NewLevenshteinSimilarity()))
	require.NoError(t, err)

	cfg := config.ServerConfig{Listen: ":0", MaxUploadMB: 50}
	return NewServer(cfg, service, extractor.New(zap.NewNop()), zap.NewNop())
}

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestServerAnalyze(t *testing.T) {
	srv := newTestServer(t)

	t.Run("TxtUpload", func(t *testing.T) {
		req := uploadRequest(t, "doc.txt", []byte("Thiss is a test. It contain errors."))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var report proofread.AnalysisReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

		assert.NotEmpty(t, report.AnalysisID)
		assert.Greater(t, report.TotalErrors, 0)
		assert.NotEmpty(t, report.SpellingErrors)
		assert.Contains(t, report.CorrectedText, "This is a test.")
		// 高亮输出经过净化，仍保留标记
		assert.Contains(t, report.HighlightedText, `class="spelling-error"`)
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		req := uploadRequest(t, "doc.epub", []byte("irrelevant"))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "unsupported file type")
	})

	t.Run("EmptyDocument", func(t *testing.T) {
		req := uploadRequest(t, "blank.txt", []byte("   \n\t  "))
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, proofread.ErrCodeNoText, resp.Code)
	})

	t.Run("MissingFileField", func(t *testing.T) {
		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		require.NoError(t, writer.WriteField("other", "value"))
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Health", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})
}

func TestSanitizerKeepsHighlightMarkup(t *testing.T) {
	srv := newTestServer(t)

	clean := srv.sanitizer.Sanitize(`<span class="spelling-error" title="Suggestions: this">Thiss</span><script>alert(1)</script>`)
	assert.Contains(t, clean, `<span class="spelling-error"`)
	assert.NotContains(t, clean, "<script>")
}
