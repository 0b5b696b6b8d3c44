package transport

import (
	stderrors "errors"
	"net/http"

	"github.com/muhammadheryan/user-dashboard/utils/errors"
)

func (s *RestHandler) renderNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderer.Render(w, r, http.StatusNotFound, pageNotFound, PageData{Title: "404 - Page Not Found"})
}

func (s *RestHandler) renderServerError(w http.ResponseWriter, r *http.Request) {
	s.renderer.Render(w, r, http.StatusInternalServerError, pageServerError, PageData{Title: "500 - Internal Server Error"})
}

// writeError picks the error page from the CustomError status. Anything that is
// not a known not-found renders as a server error.
func (s *RestHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ce errors.CustomError
	if stderrors.As(err, &ce) && ce.ErrorHTTPCode() == http.StatusNotFound {
		s.renderNotFound(w, r)
		return
	}
	s.renderServerError(w, r)
}
