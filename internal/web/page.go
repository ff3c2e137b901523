// Package web renders the server-side HTML dashboard page.
package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/data-ashita/monitor-dash/internal/api/handlers"
	"github.com/data-ashita/monitor-dash/pkg/config"
)

// Page serves the dashboard page. All aggregate computation happens in the
// dashboard handler; the page only renders what it is given.
type Page struct {
	dashboard *handlers.DashboardHandler
	settings  config.Settings
	window    handlers.WindowOptions
	logger    *slog.Logger
	tmpl      *template.Template
}

// NewPage creates the dashboard page renderer.
func NewPage(dash *handlers.DashboardHandler, settings config.Settings, window handlers.WindowOptions, logger *slog.Logger) (*Page, error) {
	tmpl, err := template.New("dashboard").Parse(tmplDashboard)
	if err != nil {
		return nil, fmt.Errorf("parsing dashboard template: %w", err)
	}
	return &Page{
		dashboard: dash,
		settings:  settings,
		window:    window,
		logger:    logger,
		tmpl:      tmpl,
	}, nil
}

// pageData feeds the dashboard template. The aggregate payload is injected as
// a JSON blob consumed by the inline chart and table scripts.
type pageData struct {
	Title         string
	JSONData      template.JS
	Days          int
	MaxDays       int
	Task          string
	Level         string
	Source        string
	FetchError    string
	NoData        bool
	Truncated     bool
	SuccessColor  string
	ErrorColor    string
	CriticalColor string
}

// Serve handles GET / - one synchronous render cycle for the page controls.
func (p *Page) Serve(w http.ResponseWriter, r *http.Request) {
	data := p.dashboard.Compute(r)

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("failed to marshal dashboard payload", "error", err)
		handlers.WriteInternalError(w, "failed to render dashboard")
		return
	}

	pd := pageData{
		Title:         p.settings.PageTitle,
		JSONData:      template.JS(jsonBytes),
		Days:          data.Days,
		MaxDays:       p.window.MaxDays,
		Task:          data.Filter.TaskName,
		Level:         data.Filter.Level,
		Source:        data.Filter.RunSource,
		FetchError:    data.FetchError,
		NoData:        data.FetchError == "" && data.Overview.Total == 0,
		Truncated:     data.Truncated,
		SuccessColor:  p.settings.SuccessColor,
		ErrorColor:    p.settings.ErrorColor,
		CriticalColor: p.settings.CriticalColor,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.Execute(w, pd); err != nil {
		p.logger.Error("template error", "error", err)
	}
}
