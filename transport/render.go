package transport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/muhammadheryan/user-dashboard/model"
	"github.com/muhammadheryan/user-dashboard/utils/logger"
	"go.uber.org/zap"
)

//go:embed views/*.html
var viewFS embed.FS

//go:embed static
var staticFS embed.FS

const (
	pageIndex       = "index"
	pageDashboard   = "dashboard"
	pageCreate      = "create"
	pageUpdate      = "update"
	pageDetail      = "detail"
	pageNotFound    = "404"
	pageServerError = "500"
)

var pages = []string{pageIndex, pageDashboard, pageCreate, pageUpdate, pageDetail, pageNotFound, pageServerError}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// PageData is what every view receives. Unused fields stay zero.
type PageData struct {
	Title  string
	Flash  string
	Users  []model.UserEntity
	User   *model.UserEntity
	Form   *model.UserForm
	Errors model.ValidationErrors
}

// Renderer executes a page inside the shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).Funcs(funcs).ParseFS(viewFS,
			"views/layout.html",
			"views/form.html",
			"views/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Render writes the page with the given status. The page is buffered so a
// template failure still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, data PageData) {
	t, ok := r.templates[page]
	if !ok {
		logger.FromContext(req.Context()).Error("[Render] unknown page", zap.String("page", page))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromContext(req.Context()).Error("[Render] err ExecuteTemplate", zap.String("page", page), zap.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
