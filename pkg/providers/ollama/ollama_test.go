package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerdneilsfield/go-proofread-agent/pkg/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(endpoint string) *Provider {
	cfg := DefaultConfig()
	cfg.APIEndpoint = endpoint
	return New(cfg)
}

func TestAnalyzeChunk(t *testing.T) {
	t.Run("ParsesIssueArray", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/generate", r.URL.Path)

			var req GenerateRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.False(t, req.Stream)
			assert.NotEmpty(t, req.System)

			_ = json.NewEncoder(w).Encode(GenerateResponse{
				Response: `[{"type":"spelling","matchedText":"teh","message":"typo","suggestions":["the"],"confidence":0.9}]`,
				Done:     true,
			})
		}))
		defer srv.Close()

		issues, err := newTestProvider(srv.URL).AnalyzeChunk(context.Background(), "teh text")
		require.NoError(t, err)
		require.Len(t, issues, 1)
		assert.Equal(t, "spelling", issues[0].Type)
		assert.Equal(t, "teh", issues[0].MatchedText)
	})

	t.Run("CodeFencedResponse", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(GenerateResponse{
				Response: "```json\n[]\n```",
			})
		}))
		defer srv.Close()

		issues, err := newTestProvider(srv.URL).AnalyzeChunk(context.Background(), "fine")
		require.NoError(t, err)
		assert.Empty(t, issues)
	})

	t.Run("MalformedResponse", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(GenerateResponse{Response: "not json at all"})
		}))
		defer srv.Close()

		_, err := newTestProvider(srv.URL).AnalyzeChunk(context.Background(), "text")
		require.Error(t, err)

		var provErr *providers.Error
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "malformed_response", provErr.Code)
		assert.False(t, provErr.IsTransient())
	})

	t.Run("RateLimited", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := newTestProvider(srv.URL).AnalyzeChunk(context.Background(), "text")
		require.Error(t, err)

		var provErr *providers.Error
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "rate_limit", provErr.Code)
		assert.True(t, provErr.IsTransient())
	})

	t.Run("ServerError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newTestProvider(srv.URL).AnalyzeChunk(context.Background(), "text")
		require.Error(t, err)

		var provErr *providers.Error
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, "server_error", provErr.Code)
	})
}

func TestRewrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(GenerateResponse{Response: "  The corrected text.  "})
	}))
	defer srv.Close()

	out, err := newTestProvider(srv.URL).Rewrite(context.Background(), "Teh corected text.")
	require.NoError(t, err)
	assert.Equal(t, "The corrected text.", out)
}

func TestHealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/tags", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		assert.NoError(t, newTestProvider(srv.URL).HealthCheck(context.Background()))
	})

	t.Run("Unreachable", func(t *testing.T) {
		assert.Error(t, newTestProvider("http://127.0.0.1:1").HealthCheck(context.Background()))
	})
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, "[]", stripCodeFence("```json\n[]\n```"))
	assert.Equal(t, "[]", stripCodeFence("```\n[]\n```"))
	assert.Equal(t, "plain", stripCodeFence("plain"))
	assert.Equal(t, "", stripCodeFence(""))
}
