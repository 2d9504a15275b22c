package site

import (
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type apiPost struct {
	Slug     string                  `json:"slug"`
	Metadata interfaces.PostMetadata `json:"metadata"`
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.Recent(r.Context(), s.cfg.RecentLimit)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "home", viewData{Posts: posts})
}

func (s *Site) handleBlog(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.All(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "list", viewData{Title: "Blog", Posts: posts})
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	slug := strings.Trim(chi.URLParam(r, "*"), "/")
	if slug == "" {
		s.handleBlog(w, r)
		return
	}
	if unescaped, err := url.PathUnescape(slug); err == nil {
		slug = unescaped
	}

	post, err := s.posts.BySlug(r.Context(), slug)
	if err != nil {
		s.renderError(w, r, err)
		return
	}

	var body template.HTML
	if post.Content != nil {
		body, err = post.Content.HTML(r.Context())
		if err != nil {
			s.renderError(w, r, err)
			return
		}
	}
	s.render(w, r, http.StatusOK, "post", viewData{
		Title:       post.Metadata.Title,
		Description: post.Metadata.Description,
		Post:        post,
		Body:        body,
	})
}

func (s *Site) handleTagged(tag, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := s.posts.ByTag(r.Context(), tag)
		if err != nil {
			s.renderError(w, r, err)
			return
		}
		s.render(w, r, http.StatusOK, "list", viewData{Title: title, Posts: posts})
	}
}

func (s *Site) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.posts.Tags(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "tags", viewData{Title: "Tags", Tags: tags})
}

func (s *Site) handleTag(w http.ResponseWriter, r *http.Request) {
	param := chi.URLParam(r, "tag")
	if unescaped, err := url.PathUnescape(param); err == nil {
		param = unescaped
	}

	tag, posts, err := s.posts.ByTagSlug(r.Context(), param)
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "list", viewData{Title: "Tagged " + tag, Tag: tag, Posts: posts})
}

func (s *Site) handlePage(w http.ResponseWriter, r *http.Request) {
	if s.pages == nil {
		s.renderStatus(w, r, http.StatusNotFound, "Page not found")
		return
	}

	page, err := s.pages.Load(r.Context(), chi.URLParam(r, "page"))
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	body, err := page.Body.HTML(r.Context())
	if err != nil {
		s.renderError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "page", viewData{
		Title:       page.Metadata.Title,
		Description: page.Metadata.Description,
		Body:        body,
	})
}

func (s *Site) handleAPIPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.All(r.Context())
	if err != nil {
		status, payload := mapError(err)
		s.logFailure(r, status, err)
		render.Status(r, status)
		render.JSON(w, r, payload)
		return
	}

	out := make([]apiPost, 0, len(posts))
	for _, post := range posts {
		out = append(out, apiPost{Slug: post.Slug, Metadata: post.Metadata})
	}
	render.JSON(w, r, out)
}

func (s *Site) handleSitemap(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.All(r.Context())
	if err != nil {
		s.writePlainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	_, _ = w.Write([]byte(buildSitemap(s.origin(r), s.cfg.StaticPaths, posts)))
}

func (s *Site) handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(buildRobots(s.origin(r))))
}

func (s *Site) handleFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := s.posts.All(r.Context())
	if err != nil {
		s.writePlainError(w, r, err)
		return
	}
	channel := feedChannel{
		Title:       s.cfg.Title,
		Description: s.cfg.Description,
		Link:        s.origin(r),
	}
	w.Header().Set("Content-Type", "application/rss+xml")
	_, _ = w.Write([]byte(buildRSSFeed(channel, posts)))
}

type readiness interface {
	Ready() bool
}

func (s *Site) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{"status": "ok"}
	if ready, ok := s.posts.(readiness); ok {
		payload["posts_loaded"] = ready.Ready()
	}
	render.JSON(w, r, payload)
}
