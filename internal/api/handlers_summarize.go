package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dgallion1/brevity/internal/llm"
	"github.com/dgallion1/brevity/internal/parser"
	"github.com/dgallion1/brevity/internal/summarize"
)

type summarizeRequest struct {
	Text         string `json:"text"`
	Tone         string `json:"tone"`
	MaxSentences int    `json:"max_sentences"`
	Model        string `json:"model"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Model   string `json:"model"`
	Chunks  int    `json:"chunks"`
	Cached  bool   `json:"cached,omitempty"`
	Title   string `json:"title,omitempty"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "validation_error", "invalid request body", http.StatusBadRequest)
		return
	}

	text := strings.TrimSpace(req.Text)
	style, ok := s.resolveStyle(w, text, req.Tone, req.MaxSentences)
	if !ok {
		return
	}

	res, err := s.pipeline.Run(r.Context(), text, style, req.Model)
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary: res.Summary,
		Model:   res.Model,
		Chunks:  res.Chunks,
		Cached:  res.Cached,
	})
}

func (s *Server) handleSummarizeDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1<<20) // extra for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "validation_error", "invalid multipart form", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "validation_error", "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, "validation_error",
			fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(filename)
	if err != nil {
		jsonError(w, "validation_error", err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(io.LimitReader(file, s.cfg.MaxUploadBytes), filename)
	if err != nil {
		s.log.Warn("document parse failed", "filename", filename, "error", err)
		jsonError(w, "validation_error", "could not parse document", http.StatusBadRequest)
		return
	}

	maxUnits := 0
	if v := r.FormValue("max_sentences"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "validation_error", "max_sentences must be an integer", http.StatusBadRequest)
			return
		}
		maxUnits = n
	}

	text := strings.TrimSpace(doc.Text)
	style, ok := s.resolveStyle(w, text, r.FormValue("tone"), maxUnits)
	if !ok {
		return
	}

	res, err := s.pipeline.Run(r.Context(), text, style, r.FormValue("model"))
	if err != nil {
		s.writePipelineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{
		Summary: res.Summary,
		Model:   res.Model,
		Chunks:  res.Chunks,
		Cached:  res.Cached,
		Title:   doc.Title,
	})
}

// resolveStyle validates the caller's text/tone/unit inputs, writing a 400
// and returning ok=false on any violation.
func (s *Server) resolveStyle(w http.ResponseWriter, text, tone string, maxUnits int) (summarize.Style, bool) {
	if text == "" {
		jsonError(w, "validation_error", "text cannot be empty", http.StatusBadRequest)
		return summarize.Style{}, false
	}

	parsedTone, err := summarize.ParseTone(tone)
	if err != nil {
		jsonError(w, "validation_error", err.Error(), http.StatusBadRequest)
		return summarize.Style{}, false
	}

	if maxUnits == 0 {
		maxUnits = summarize.DefaultMaxUnits
	}
	if maxUnits < 1 || maxUnits > summarize.MaxUnitsLimit {
		jsonError(w, "validation_error",
			fmt.Sprintf("max_sentences must be between 1 and %d", summarize.MaxUnitsLimit), http.StatusBadRequest)
		return summarize.Style{}, false
	}

	return summarize.Style{Tone: parsedTone, MaxUnits: maxUnits}, true
}

func (s *Server) writePipelineError(w http.ResponseWriter, err error) {
	var ce *llm.Error
	if errors.As(err, &ce) {
		s.log.Error("pipeline failed", "kind", ce.Kind, "error", err)
		jsonError(w, string(ce.Kind), ce.Message, statusForKind(ce.Kind))
		return
	}
	s.log.Error("pipeline failed", "error", err)
	jsonError(w, string(llm.KindUpstream), "summarization failed", http.StatusBadGateway)
}

func statusForKind(k llm.Kind) int {
	switch k {
	case llm.KindTimeout:
		return http.StatusGatewayTimeout
	case llm.KindRateLimited:
		return http.StatusTooManyRequests
	case llm.KindAuthFailed:
		return http.StatusUnauthorized
	default:
		return http.StatusBadGateway
	}
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

func jsonError(w http.ResponseWriter, code, msg string, status int) {
	writeJSON(w, status, map[string]string{"code": code, "error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
