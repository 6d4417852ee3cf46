package server

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/logger"
	"github.com/jonathan/resume-tailor/internal/pipeline"
	"github.com/jonathan/resume-tailor/internal/types"
)

// compileDiagnostic accompanies every compilation failure
const compileDiagnostic = "Online LaTeX compilation failed. The LaTeX code may have syntax errors."

// GenerateResponse is the success body of POST /api/generate-resume
type GenerateResponse struct {
	Success   bool                 `json:"success"`
	RunID     string               `json:"run_id"`
	Metadata  *types.ResumeRecord  `json:"metadata"`
	LaTeXCode string               `json:"latex_code"`
	Debug     pipeline.DebugCounts `json:"debug"`
}

// CompileResponse is the success body of POST /api/compile-latex
type CompileResponse struct {
	Success   bool   `json:"success"`
	PDFBase64 string `json:"pdf_base64"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Compiler string `json:"compiler"`
}

func (s *Server) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if timeout := s.cfg.RequestTimeout.Std(); timeout > 0 {
		return context.WithTimeout(r.Context(), timeout)
	}
	return context.WithCancel(r.Context())
}

// handleGenerateResume runs the pipeline on an uploaded resume and a job
// description
func (s *Server) handleGenerateResume(w http.ResponseWriter, r *http.Request) {
	resumeText, jobDescription, err := s.readGenerateForm(w, r)
	if err != nil {
		errorResponse(w, err)
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	result, err := s.generator.Run(ctx, resumeText, jobDescription)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("resume generation failed")
		jsonResponse(w, http.StatusInternalServerError, failure{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, GenerateResponse{
		Success:   true,
		RunID:     result.RunID,
		Metadata:  result.Record,
		LaTeXCode: result.LaTeX,
		Debug:     result.Debug,
	})
}

func (s *Server) readGenerateForm(w http.ResponseWriter, r *http.Request) (string, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return "", "", &RequestError{Field: "resume_file", Message: "upload too large"}
		}
		return "", "", &RequestError{Message: "expected multipart form data"}
	}

	file, _, err := r.FormFile("resume_file")
	if err != nil {
		return "", "", &RequestError{Field: "resume_file", Message: "file is required"}
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", &RequestError{Field: "resume_file", Message: "failed to read upload"}
	}

	resumeText, err := ingestion.ExtractorFor(data).ExtractText(data)
	if err != nil {
		return "", "", &RequestError{Field: "resume_file", Message: err.Error()}
	}

	raw := r.FormValue("job_description")
	if strings.TrimSpace(raw) == "" {
		return "", "", &RequestError{Field: "job_description", Message: "field is required"}
	}
	jobDescription, err := ingestion.CleanJobDescription(raw)
	if err != nil {
		return "", "", &RequestError{Field: "job_description", Message: err.Error()}
	}

	logger.Ctx(r.Context()).Debug().
		Str("resume_kind", ingestion.KindOf(data)).
		Str("resume_hash", ingestion.NewMetadata(ingestion.KindOf(data), "upload", resumeText).Hash).
		Int("job_chars", len(jobDescription)).
		Msg("generate request accepted")

	return resumeText, jobDescription, nil
}

// handleCompileLaTeX compiles LaTeX source through the remote compiler chain
func (s *Server) handleCompileLaTeX(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	source := r.FormValue("latex_code")
	if strings.TrimSpace(source) == "" {
		errorResponse(w, &RequestError{Field: "latex_code", Message: "field is required"})
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	pdf, err := s.compiler.Compile(ctx, source)
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("compilation failed")
		jsonResponse(w, http.StatusInternalServerError, failure{Error: err.Error(), Diagnostic: compileDiagnostic})
		return
	}

	jsonResponse(w, http.StatusOK, CompileResponse{
		Success:   true,
		PDFBase64: base64.StdEncoding.EncodeToString(pdf),
	})
}

// handleHealth reports liveness
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	jsonResponse(w, http.StatusOK, HealthResponse{Status: "healthy", Compiler: "online"})
}
