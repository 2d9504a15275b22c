package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = []string{"home", "list", "post", "tags", "page", "status"}

type siteInfo struct {
	Title       string
	Description string
	Author      string
}

type viewData struct {
	Site        siteInfo
	Title       string
	Description string
	Tag         string
	Posts       []*interfaces.Post
	Post        *interfaces.Post
	Tags        []interfaces.TagSummary
	Body        template.HTML
	Status      int
	Message     string
}

var templateFuncs = template.FuncMap{
	"postPath":    postPath,
	"tagPath":     tagPath,
	"displayDate": displayDate,
}

func parseTemplates() (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("site: parse template %s: %w", name, err)
		}
		out[name] = tmpl
	}
	return out, nil
}

// render executes the page into a buffer first so a template failure can
// still produce a clean 500.
func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, name string, data viewData) {
	data.Site = siteInfo{Title: s.cfg.Title, Description: s.cfg.Description, Author: s.cfg.Author}
	if data.Status == 0 {
		data.Status = status
	}

	var buf bytes.Buffer
	tmpl, ok := s.templates[name]
	if !ok {
		s.logFailure(r, http.StatusInternalServerError, fmt.Errorf("site: unknown template %s", name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logFailure(r, http.StatusInternalServerError, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Site) renderStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "status", viewData{
		Title:   http.StatusText(status),
		Status:  status,
		Message: message,
	})
}

func postPath(slug string) string {
	segments := strings.Split(slug, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return "/blog/" + strings.Join(segments, "/")
}

func tagPath(tag string) string {
	return "/tags/" + url.PathEscape(tag)
}

func displayDate(value string) string {
	parsed, err := posts.ParseDate(value)
	if err != nil {
		return value
	}
	return parsed.Format("January 2, 2006")
}
