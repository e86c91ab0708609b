package present

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/omarshaarawi/fantasydash/internal/failure"
	"github.com/omarshaarawi/fantasydash/internal/observability"
	"github.com/omarshaarawi/fantasydash/internal/service"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.New("report.html.tmpl").Funcs(Funcs).ParseFS(templateFS, "templates/report.html.tmpl"))

// Funcs are the helpers shared by the report and the web page templates.
var Funcs = template.FuncMap{
	"points":      func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"pct":         func(v float64) string { return fmt.Sprintf("%.3f", v) },
	"matchupLine": service.MatchupLine,
}

type Report struct {
	path   string
	logger *slog.Logger
}

func NewReport(path string, logger *slog.Logger) *Report {
	if logger == nil {
		logger = slog.Default()
	}
	return &Report{path: path, logger: logger}
}

func (r *Report) Path() string {
	return r.path
}

// Write renders the dashboard and replaces the report file. Nothing is
// written if rendering fails.
func (r *Report) Write(d service.Dashboard) error {
	const op = "write report"

	r.logger.Info("Generating HTML report", "path", r.path)

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, d); err != nil {
		observability.ReportWritesTotal.WithLabelValues("failure").Inc()
		return failure.New(failure.KindRenderFailure, op, fmt.Errorf("rendering template: %w", err))
	}

	if err := writeFile(r.path, buf.Bytes()); err != nil {
		observability.ReportWritesTotal.WithLabelValues("failure").Inc()
		return failure.New(failure.KindRenderFailure, op, err)
	}

	observability.ReportWritesTotal.WithLabelValues("success").Inc()
	r.logger.Info("Successfully saved HTML report", "path", r.path)
	return nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting report permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing report: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing report: %w", err)
	}
	return nil
}
