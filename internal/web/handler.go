package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/omarshaarawi/fantasydash/internal/present"
	"github.com/omarshaarawi/fantasydash/internal/service"
)

//go:embed templates/index.html.tmpl
var templateFS embed.FS

var indexTemplate = template.Must(template.New("index.html.tmpl").Funcs(present.Funcs).ParseFS(templateFS, "templates/index.html.tmpl"))

type Loader interface {
	Load(ctx context.Context) service.Dashboard
}

type Handler struct {
	loader Loader
	tmpl   *template.Template
	logger *slog.Logger
}

func NewHandler(loader Loader, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{loader: loader, tmpl: indexTemplate, logger: logger}
}

// Dashboard runs the full pipeline for every request. Pipeline failures
// still render a page with notices; only a template error is a 500.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("Dashboard route accessed", "request_id", middleware.GetReqID(r.Context()))

	d := h.loader.Load(r.Context())

	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, d); err != nil {
		h.logger.Error("Failed to render dashboard", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}
