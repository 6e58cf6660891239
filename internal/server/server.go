package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/microcosm-cc/bluemonday"
	"github.com/nerdneilsfield/go-proofread-agent/internal/config"
	"github.com/nerdneilsfield/go-proofread-agent/internal/extractor"
	"github.com/nerdneilsfield/go-proofread-agent/pkg/proofread"
	"go.uber.org/zap"
)

// Server 校对 HTTP 服务
type Server struct {
	config    config.ServerConfig
	service   proofread.Service
	extractor *extractor.Extractor
	sanitizer *bluemonday.Policy
	logger    *zap.Logger
	router    chi.Router
}

// NewServer 创建校对服务的 HTTP 入口
func NewServer(cfg config.ServerConfig, service proofread.Service, ext *extractor.Extractor, logger *zap.Logger) *Server {
	// 高亮文本只允许带 class/title 的 span 标记通过
	sanitizer := bluemonday.NewPolicy()
	sanitizer.AllowAttrs("class", "title").OnElements("span")

	s := &Server{
		config:    cfg,
		service:   service,
		extractor: ext,
		sanitizer: sanitizer,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
	s.router = r

	return s
}

// Router 返回路由器，便于测试
func (s *Server) Router() http.Handler {
	return s.router
}

// Start 启动 HTTP 服务并阻塞
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         s.config.Listen,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeout) * time.Second,
	}

	s.logger.Info("http server listening", zap.String("addr", s.config.Listen))
	return srv.ListenAndServe()
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// handleAnalyze 接收 multipart 上传的文档并返回分析报告
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	maxBytes := s.config.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil {
		s.writeError(w, http.StatusRequestEntityTooLarge, "upload too large or malformed", "")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "missing 'file' form field", "")
		return
	}
	defer file.Close()

	if !extractor.IsSupported(header.Filename) {
		s.writeError(w, http.StatusBadRequest,
			"unsupported file type, expected .pdf, .docx or .txt", proofread.ErrCodeExtraction)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "failed to read upload", "")
		return
	}

	model, err := s.extractor.ExtractBytes(data, header.Filename)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}

	report, err := s.service.Analyze(r.Context(), model)
	if err != nil {
		s.respondAnalysisError(w, err)
		return
	}

	report.HighlightedText = s.sanitizer.Sanitize(report.HighlightedText)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		s.logger.Error("failed to encode report", zap.Error(err))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// respondAnalysisError 致命的提取/空文本错误映射为 400，其余 500
func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	var analysisErr *proofread.AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.IsFatal() {
		s.writeError(w, http.StatusBadRequest, analysisErr.Message, analysisErr.Code)
		return
	}

	s.logger.Error("analysis failed", zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, "analysis failed", "")
}

func (s *Server) writeError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: code})
}
