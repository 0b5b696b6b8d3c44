package transport

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/muhammadheryan/user-dashboard/application/flash"
	userapp "github.com/muhammadheryan/user-dashboard/application/user"
	"github.com/muhammadheryan/user-dashboard/constant"
	"github.com/muhammadheryan/user-dashboard/model"
	utilsContext "github.com/muhammadheryan/user-dashboard/utils/context"
	"github.com/muhammadheryan/user-dashboard/utils/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const (
	dashboardPath = "/dashboard"
	// same cap net/http applies to urlencoded bodies
	maxFormBytes = 10 << 20
)

// Options tunes the HTTP surface. The zero value is usable.
type Options struct {
	SessionCookieName string
	SessionSecure     bool
	SessionMaxAge     time.Duration
	MetricsToken      string
	// Registry receives the HTTP metrics and backs /metrics. Defaults to the
	// global Prometheus registry.
	Registry *prometheus.Registry
}

type RestHandler struct {
	UserApp  userapp.UserApp
	FlashApp flash.FlashApp

	renderer *Renderer
	decoder  *schema.Decoder
}

func NewTransport(UserApp userapp.UserApp, FlashApp flash.FlashApp, opts Options) (http.Handler, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, err
	}

	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	rh := &RestHandler{
		UserApp:  UserApp,
		FlashApp: FlashApp,
		renderer: renderer,
		decoder:  decoder,
	}

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Registry != nil {
		registerer, gatherer = opts.Registry, opts.Registry
	}

	router := mux.NewRouter()

	router.PathPrefix("/static/").Handler(staticHandler())
	router.Handle("/metrics", InternalMiddleware(opts.MetricsToken)(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	)).Methods(http.MethodGet)

	router.HandleFunc("/", rh.Home).Methods(http.MethodGet)
	router.HandleFunc(dashboardPath, rh.List).Methods(http.MethodGet)
	router.HandleFunc(dashboardPath, rh.Update).Methods(http.MethodPut)
	router.HandleFunc(dashboardPath, rh.Delete).Methods(http.MethodDelete)
	router.HandleFunc(dashboardPath+"/create", rh.CreateForm).Methods(http.MethodGet)
	router.HandleFunc(dashboardPath+"/create", rh.Create).Methods(http.MethodPost)
	router.HandleFunc(dashboardPath+"/update/{id}", rh.UpdateForm).Methods(http.MethodGet)
	router.HandleFunc(dashboardPath+"/{id}", rh.Detail).Methods(http.MethodGet)

	// unmatched paths and methods both get the 404 page
	router.NotFoundHandler = http.HandlerFunc(rh.renderNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(rh.renderNotFound)

	// middleware
	router.Use(MetricsMiddleware(newHTTPMetrics(registerer)))
	router.Use(SessionMiddleware(opts.SessionCookieName, opts.SessionSecure, opts.SessionMaxAge))

	// method override has to run before routing, so it wraps the router
	var handler http.Handler = router
	handler = LoggingMiddleware()(handler)
	handler = RequestIDMiddleware(handler)
	handler = handlers.HTTPMethodOverrideHandler(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(handler)

	return handler, nil
}

// Home handler
func (s *RestHandler) Home(w http.ResponseWriter, r *http.Request) {
	s.renderer.Render(w, r, http.StatusOK, pageIndex, PageData{Title: "Home"})
}

// List handler shows every user and the pending flash message.
func (s *RestHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.UserApp.List(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sessionID, _ := utilsContext.GetSessionID(ctx)
	msg, err := s.FlashApp.Pop(ctx, sessionID, constant.FlashKey)
	if err != nil {
		logger.FromContext(ctx).Warn("[List] err FlashApp.Pop", zap.String("error", err.Error()))
	}

	s.renderer.Render(w, r, http.StatusOK, pageDashboard, PageData{
		Title: "Dashboard",
		Flash: msg,
		Users: users,
	})
}

func (s *RestHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user, err := s.UserApp.Detail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.renderer.Render(w, r, http.StatusOK, pageDetail, PageData{Title: "Detail", User: user})
}

func (s *RestHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	s.renderer.Render(w, r, http.StatusOK, pageCreate, PageData{Title: "Create", Form: &model.UserForm{}})
}

// Create handler
func (s *RestHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := s.decodeForm(r)
	if err != nil {
		logger.FromContext(ctx).Warn("[Create] err decodeForm", zap.String("error", err.Error()))
		s.renderServerError(w, r)
		return
	}

	_, err = s.UserApp.Create(ctx, form.Fields())
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			form.Password = ""
			s.renderer.Render(w, r, http.StatusOK, pageCreate, PageData{Title: "Create", Form: form, Errors: verrs})
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.flashAndRedirect(w, r, constant.FlashUserCreated)
}

func (s *RestHandler) UpdateForm(w http.ResponseWriter, r *http.Request) {
	user, err := s.UserApp.Detail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.renderer.Render(w, r, http.StatusOK, pageUpdate, PageData{Title: "Update", Form: model.NewUserForm(user)})
}

// Update handler overwrites every field of the user named by the hidden id.
func (s *RestHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := s.decodeForm(r)
	if err != nil {
		logger.FromContext(ctx).Warn("[Update] err decodeForm", zap.String("error", err.Error()))
		s.renderServerError(w, r)
		return
	}

	_, err = s.UserApp.Update(ctx, &model.UpdateUserRequest{
		ID:        form.ID,
		Fields:    form.Fields(),
		Reference: form.Reference(),
	})
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			form.Password = ""
			s.renderer.Render(w, r, http.StatusOK, pageUpdate, PageData{Title: "Update", Form: form, Errors: verrs})
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.flashAndRedirect(w, r, constant.FlashUserUpdated)
}

// Delete handler always ends on the dashboard. The flash is only set when a
// user was actually removed.
func (s *RestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := s.decodeForm(r)
	if err != nil {
		logger.FromContext(ctx).Warn("[Delete] err decodeForm", zap.String("error", err.Error()))
		s.renderServerError(w, r)
		return
	}

	deleted, err := s.UserApp.Delete(ctx, form.ID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if !deleted {
		http.Redirect(w, r, dashboardPath, http.StatusFound)
		return
	}
	s.flashAndRedirect(w, r, constant.FlashUserDeleted)
}

func (s *RestHandler) decodeForm(r *http.Request) (*model.UserForm, error) {
	if err := parseForm(r); err != nil {
		return nil, err
	}
	var form model.UserForm
	if err := s.decoder.Decode(&form, r.PostForm); err != nil {
		return nil, err
	}
	return &form, nil
}

// parseForm is http.Request.ParseForm that also reads an urlencoded DELETE
// body, which net/http leaves unread. A form already parsed before a method
// override is kept as is.
func parseForm(r *http.Request) error {
	if r.Method == http.MethodDelete && r.PostForm == nil && r.Body != nil {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mediaType == "application/x-www-form-urlencoded" {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxFormBytes+1))
			if err != nil {
				return err
			}
			if len(body) > maxFormBytes {
				return errors.New("form body too large")
			}
			values, err := url.ParseQuery(string(body))
			if err != nil {
				return err
			}
			r.PostForm = values
		}
	}
	return r.ParseForm()
}

func (s *RestHandler) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg string) {
	ctx := r.Context()
	sessionID, _ := utilsContext.GetSessionID(ctx)
	if err := s.FlashApp.Set(ctx, sessionID, constant.FlashKey, msg); err != nil {
		logger.FromContext(ctx).Warn("[flashAndRedirect] err FlashApp.Set", zap.String("error", err.Error()))
	}
	http.Redirect(w, r, dashboardPath, http.StatusFound)
}
