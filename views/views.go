// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/athishulleri01/poll-system/models"
	"github.com/athishulleri01/poll-system/results"
)

//go:embed templates/*.html
var templateFS embed.FS

// PollListPage is the data for the poll list.
type PollListPage struct {
	User  *models.User
	Polls []models.PollSummary
}

// ResultsPage is the data for a poll's results.
type ResultsPage struct {
	User     *models.User
	Poll     models.Poll
	Tally    results.Tally
	UserVote *models.UserVote
	Expired  bool
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"ago":   humanize.Time,
		"comma": func(n int) string { return humanize.Comma(int64(n)) },
		"pct":   func(f float64) string { return fmt.Sprintf("%.1f", f) },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{"list", "results"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// PollList renders the active poll list.
func (r *Renderer) PollList(w io.Writer, page PollListPage) error {
	return r.render(w, "list", page)
}

// Results renders a poll's tally.
func (r *Renderer) Results(w io.Writer, page ResultsPage) error {
	return r.render(w, "results", page)
}

// render buffers the page so a template error never leaves a partial response.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
