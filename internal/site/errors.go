package site

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/internal/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func (s *Site) renderError(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := mapError(err)
	s.logFailure(r, status, err)
	if status == http.StatusNotFound {
		s.renderStatus(w, r, status, "Page not found")
		return
	}
	s.renderStatus(w, r, status, "Something went wrong")
}

func (s *Site) writePlainError(w http.ResponseWriter, r *http.Request, err error) {
	status, _ := mapError(err)
	s.logFailure(r, status, err)
	http.Error(w, http.StatusText(status), status)
}

func (s *Site) logFailure(r *http.Request, status int, err error) {
	logger := s.logger.WithContext(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error("site.request.failed", "path", r.URL.Path, "status", status, "error", err)
		return
	}
	logger.Debug("site.request.not_found", "path", r.URL.Path, "error", err)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}
	if posts.IsNotFound(err) || errors.Is(err, markdown.ErrPageNotFound) {
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	}
	return http.StatusInternalServerError, errorResponse{Error: "internal_error"}
}
