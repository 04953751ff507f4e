package handlers

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/s/bitmentor/internal/middleware"
	"github.com/s/bitmentor/internal/models"
	"github.com/s/bitmentor/internal/service"
	"github.com/s/bitmentor/internal/session"
	"github.com/s/bitmentor/internal/web"
)

type Handler struct {
	Svc      *service.Service
	Sessions *session.Manager
	Config   *oauth2.Config
	Tmpl     *template.Template

	log       zerolog.Logger
	secure    bool
	staticDir string
}

// Options tune the optional parts of the web layer.
type Options struct {
	// OAuth enables Google sign-in when non-nil.
	OAuth         *oauth2.Config
	Logger        zerolog.Logger
	SecureCookies bool
	// StaticDir is served under /static/ when set.
	StaticDir string
}

func NewHandler(svc *service.Service, sessions *session.Manager, opts Options) (*Handler, error) {
	tmpl, err := web.Parse()
	if err != nil {
		return nil, err
	}

	return &Handler{
		Svc:       svc,
		Sessions:  sessions,
		Config:    opts.OAuth,
		Tmpl:      tmpl,
		log:       opts.Logger,
		secure:    opts.SecureCookies,
		staticDir: opts.StaticDir,
	}, nil
}

type PageData struct {
	Title           string
	IsAuthenticated bool
	UserID          uint
	UserName        string
	CurrentPath     string
	GoogleEnabled   bool

	// Error is shown above the page content; Form echoes submitted values.
	Error string
	Form  map[string]string

	Status  int
	Message string

	Enrollments []models.EnrollmentView
	Courses     []models.Course
	Detail      *service.CourseDetail
	Profile     *service.Profile

	Goal     string
	Schedule []string

	Tests     []service.TestSummary
	CourseID  uint
	Questions []models.Question
	Result    *service.TestResult

	Threads []models.ThreadView
	Thread  *models.ThreadView
	Posts   []models.PostView
}

// page fills the navigation fields of PageData from the request.
func (h *Handler) page(r *http.Request, title string) PageData {
	data := PageData{
		Title:         title,
		CurrentPath:   r.URL.Path,
		GoogleEnabled: h.Config != nil,
	}
	if s, ok := session.FromContext(r.Context()); ok {
		data.IsAuthenticated = true
		data.UserID = s.Identity.UserID
		data.UserName = s.Identity.UserName
	}
	return data
}

// render executes the page into a buffer so a template failure still yields a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data PageData) {
	var buf bytes.Buffer
	if err := h.Tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error().Err(err).
			Str("template", name).
			Str("request_id", middleware.RequestIDFrom(r.Context())).
			Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	data := h.page(r, http.StatusText(status))
	data.Status = status
	data.Message = message
	h.render(w, r, status, "error", data)
}

// fail maps service errors onto HTTP responses.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
	case errors.Is(err, service.ErrNoAnswersSubmitted),
		errors.Is(err, service.ErrForeignAnswer),
		errors.Is(err, service.ErrMultipleAnswers):
		h.renderError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &verr):
		h.renderError(w, r, http.StatusBadRequest, verr.Error())
	default:
		h.log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", middleware.RequestIDFrom(r.Context())).
			Msg("request failed")
		h.renderError(w, r, http.StatusInternalServerError, "Something went wrong. Please try again later.")
	}
}

// formStatus is the status a re-rendered form is sent with.
func formStatus(err error) int {
	if errors.Is(err, service.ErrEmailTaken) {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}

// isFormError reports whether err should be shown on the form it came from.
func isFormError(err error) bool {
	var verr *service.ValidationError
	return errors.As(err, &verr) || errors.Is(err, service.ErrEmailTaken)
}

func (h *Handler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.renderError(w, r, http.StatusNotFound, "The page you are looking for does not exist.")
}

// pathID reads a numeric route variable. Routes constrain ids to digits, so a
// parse failure only happens on overflow and is treated as an unknown resource.
func pathID(r *http.Request, name string) (uint, bool) {
	v, err := strconv.ParseUint(mux.Vars(r)[name], 10, 0)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func sessionFrom(r *http.Request) (*session.Session, bool) {
	return session.FromContext(r.Context())
}

// identity is the signed-in user; only valid behind RequireLogin.
func identity(r *http.Request) session.Identity {
	s, ok := sessionFrom(r)
	if !ok {
		return session.Identity{}
	}
	return s.Identity
}
