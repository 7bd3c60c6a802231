package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/pkorzen/draftpipe"
	"github.com/pkorzen/draftpipe/pipeline"
)

// ErrorStatusCode maps a domain error code to an HTTP status code.
// Validation failures are the caller's fault, auth failures need new
// credentials, everything else is a server-side failure.
func ErrorStatusCode(code string) int {
	switch code {
	case draftpipe.EINVALID:
		return http.StatusBadRequest
	case draftpipe.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case draftpipe.ENOTFOUND:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Server exposes the pipeline and its individual stages as a JSON API.
type Server struct {
	Pipeline  *pipeline.Pipeline
	Fetcher   draftpipe.Fetcher
	Extractor draftpipe.Extractor
	Generator draftpipe.Generator
	Publisher draftpipe.Publisher
	Logger    *slog.Logger
}

// Handler returns the route mux for the job API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /job", s.handleJob)
	mux.HandleFunc("POST /job/extract", s.handleExtract)
	mux.HandleFunc("POST /job/generate", s.handleGenerate)
	mux.HandleFunc("POST /job/publish", s.handlePublish)
	return mux
}

type urlRequest struct {
	URL string `json:"url"`
}

// handleJob runs the full pipeline for a URL.
func (s *Server) handleJob(w http.ResponseWriter, r *http.Request) {
	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Invalid URL provided",
		})
		return
	}

	result, err := s.Pipeline.Run(r.Context(), req.URL)
	if err != nil {
		writeError(w, ErrorStatusCode(draftpipe.ErrorCode(err)), map[string]any{
			"status":  "error",
			"jobId":   result.JobID,
			"message": draftpipe.ErrorMessage(err),
			"step":    string(result.Stage),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"jobId":    result.JobID,
		"postId":   result.Publish.PostID,
		"postUrl":  result.Publish.PostURL,
		"message":  "Job completed successfully",
		"duration": result.Duration.Seconds(),
	})
}

// handleExtract runs only the guard+fetch+extract stages for a URL.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req urlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Invalid URL provided",
		})
		return
	}

	if err := draftpipe.ValidateTargetURL(req.URL); err != nil {
		writeError(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "URL Validation Failed: " + draftpipe.ErrorMessage(err),
		})
		return
	}

	var html string
	err := draftpipe.Retry(r.Context(), 2, nil, nil, func(ctx context.Context) error {
		var ferr error
		html, ferr = s.Fetcher.Fetch(ctx, req.URL)
		return ferr
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	doc, err := s.Extractor.Extract(html, req.URL)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"data":     doc,
		"duration": time.Since(start).Seconds(),
	})
}

// handleGenerate runs only the generation stage for a posted document.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req struct {
		Document *draftpipe.ExtractedDocument `json:"document"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Document == nil {
		writeError(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Invalid document data provided",
		})
		return
	}

	article, err := s.Generator.Generate(r.Context(), req.Document)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"data":     article,
		"duration": time.Since(start).Seconds(),
	})
}

// handlePublish runs only the publish stage for a posted article.
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req struct {
		Article *draftpipe.GeneratedArticle `json:"article"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Article == nil {
		writeError(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Invalid article data provided",
		})
		return
	}
	if err := req.Article.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, map[string]any{
			"status":  "error",
			"message": "Article missing required fields (title, html, slug)",
		})
		return
	}

	result, err := s.Publisher.Publish(r.Context(), req.Article)
	if err != nil {
		s.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"postId":   result.PostID,
		"postUrl":  result.PostURL,
		"duration": time.Since(start).Seconds(),
	})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	if s.Logger != nil {
		s.Logger.Error("request failed", "error", err)
	}
	writeError(w, ErrorStatusCode(draftpipe.ErrorCode(err)), map[string]any{
		"status":  "error",
		"message": draftpipe.ErrorMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, body any) {
	writeJSON(w, status, body)
}
