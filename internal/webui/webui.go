package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"studentinsight.dev/dashboard/internal/app"
	"studentinsight.dev/dashboard/internal/logging"
)

//go:embed dashboard.html debug_index.html
var templateFS embed.FS

var (
	dashboardTemplate = template.Must(template.ParseFS(templateFS, "dashboard.html"))
	debugTemplate     = template.Must(template.ParseFS(templateFS, "debug_index.html"))
)

// WebUI serves the HTML dashboard.
type WebUI struct {
	*app.Application
}

func (webUI *WebUI) render(w http.ResponseWriter, r *http.Request, status int, tmpl *template.Template, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render page", err,
			slog.String("template", tmpl.Name()))
	}
}
