// Package server exposes the conversion pipeline over HTTP.
// It accepts multipart uploads, runs them through the same parse and
// render stages as the CLI, and serves the conversion history.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gaurav-prasanna/sheetpress/config"
	"github.com/gaurav-prasanna/sheetpress/core"
	"github.com/gaurav-prasanna/sheetpress/core/output"
	"github.com/gaurav-prasanna/sheetpress/core/paginate"
	"github.com/gaurav-prasanna/sheetpress/core/parse"
	"github.com/gaurav-prasanna/sheetpress/core/render"
	"github.com/gaurav-prasanna/sheetpress/docai"
	"github.com/gaurav-prasanna/sheetpress/history"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server wires the pipeline stages behind an HTTP API.
type Server struct {
	cfg      *config.Config
	pipeline *parse.Pipeline
	client   *docai.Client
	store    *history.Store
	logger   *slog.Logger
}

// New builds a Server from the given config.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := history.Open(cfg.HistoryDir)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	client := docai.New(cfg.ExtractionURL, logger)
	return &Server{
		cfg:      cfg,
		pipeline: parse.NewPipeline(client, logger),
		client:   client,
		store:    store,
		logger:   logger,
	}, nil
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/convert", s.handleConvert)
	r.Get("/history", s.handleHistoryList)
	r.Delete("/history/{id}", s.handleHistoryDelete)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		next.ServeHTTP(ww, req)
		s.logger.Info("request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten())
	})
}

// handleConvert accepts a multipart upload in the "file" field and
// streams back the rendered artifact. Layout and format are form values.
func (s *Server) handleConvert(w http.ResponseWriter, req *http.Request) {
	req.Body = http.MaxBytesReader(w, req.Body, s.cfg.MaxFileSize)
	file, header, err := req.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing file upload: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("reading upload: %w", err))
		return
	}

	renderer, contentType, err := selectRenderer(req.FormValue("format"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	opts, err := s.renderOptions(req, header.Filename)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	table, err := s.pipeline.Parse(req.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, convertStatus(err), err)
		return
	}

	if req.FormValue("analyze") == "true" {
		summary, suggested := s.client.Analyze(req.Context(), table)
		opts.Summary = summary
		if opts.Title == "" {
			opts.Title = suggested
		}
	}

	rendered, err := renderer.Render(table, opts)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("render: %w", err))
		return
	}

	if _, err := s.store.Add(header.Filename, len(table.Rows)); err != nil {
		s.logger.Warn("recording history", "error", err)
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", output.FileName(header.Filename, renderer.Extension())))
	w.WriteHeader(http.StatusOK)
	w.Write(rendered)
}

func (s *Server) handleHistoryList(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	entries := s.store.Entries()
	if entries == nil {
		entries = []history.Entry{}
	}
	json.NewEncoder(w).Encode(entries)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, req *http.Request) {
	if err := s.store.Delete(chi.URLParam(req, "id")); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// renderOptions reads layout form values, falling back to the config.
func (s *Server) renderOptions(req *http.Request, filename string) (core.RenderOptions, error) {
	paper := core.PaperSize(req.FormValue("paper"))
	if paper == "" {
		paper = core.PaperSize(s.cfg.Paper)
	}
	switch paper {
	case core.PaperA4, core.PaperLetter, core.PaperLegal:
	default:
		return core.RenderOptions{}, fmt.Errorf("unknown paper size %q", paper)
	}

	orientation := core.Orientation(req.FormValue("orientation"))
	if orientation == "" {
		orientation = core.Orientation(s.cfg.Orientation)
	}
	switch orientation {
	case core.Portrait, core.Landscape:
	default:
		return core.RenderOptions{}, fmt.Errorf("unknown orientation %q", orientation)
	}

	rowsPerPage := s.cfg.RowsPerPage
	if v := req.FormValue("rows_per_page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return core.RenderOptions{}, fmt.Errorf("invalid rows_per_page %q", v)
		}
		rowsPerPage = n
	}
	if rowsPerPage == 0 {
		rowsPerPage = paginate.DefaultRowsPerPage(orientation)
	}

	return core.RenderOptions{
		Title:       req.FormValue("title"),
		SourceName:  filename,
		Paper:       paper,
		Orientation: orientation,
		RowsPerPage: paginate.Clamp(rowsPerPage),
	}, nil
}

func selectRenderer(format string) (core.Renderer, string, error) {
	switch format {
	case "", "json":
		return render.NewJSONRenderer(), "application/json", nil
	case "pdf":
		return render.NewPDFRenderer(), "application/pdf", nil
	case "markdown":
		return render.NewMarkdownRenderer(), "text/markdown", nil
	default:
		return nil, "", fmt.Errorf("unknown format %q (want pdf, json, or markdown)", format)
	}
}

// convertStatus maps pipeline errors to HTTP statuses: client-side input
// problems are 4xx, extraction service failures are 502.
func convertStatus(err error) int {
	var parseErr *core.ParseError
	var formatErr *core.FormatUnsupportedError
	var extractErr *core.ExtractionError
	switch {
	case errors.As(err, &parseErr), errors.As(err, &formatErr):
		return http.StatusBadRequest
	case errors.As(err, &extractErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed", "status", status, "error", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
