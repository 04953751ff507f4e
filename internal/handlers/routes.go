package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/s/bitmentor/internal/handlers/api"
	"github.com/s/bitmentor/internal/metrics"
	"github.com/s/bitmentor/internal/middleware"
)

// Routes wires every page onto a gorilla/mux router.
func (h *Handler) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recover(h.log),
		middleware.Logging(h.log),
		middleware.Metrics,
		middleware.Security,
	)
	r.NotFoundHandler = http.HandlerFunc(h.HandleNotFound)

	loggedIn := middleware.RequireLogin(h.Sessions, h.log)

	// --- Static files ---
	if h.staticDir != "" {
		r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(h.staticDir))))
	}

	// --- Service endpoints ---
	r.HandleFunc("/healthz", h.HandleHealth).Methods("GET")
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// --- Public routes ---
	r.HandleFunc("/", h.HandleIndex).Methods("GET")
	r.HandleFunc("/signup", h.HandleSignupPage).Methods("GET")
	r.HandleFunc("/login", h.HandleLoginPage).Methods("GET")
	r.HandleFunc("/register", h.HandleRegister).Methods("POST")
	r.HandleFunc("/auth", h.HandleAuth).Methods("POST")
	r.HandleFunc("/logout", h.HandleLogout).Methods("GET")
	r.HandleFunc("/auth/google/login", h.HandleGoogleLogin).Methods("GET")
	r.HandleFunc("/auth/google/callback", h.HandleGoogleCallback).Methods("GET")

	// --- Learning ---
	r.HandleFunc("/dashboard", loggedIn(h.HandleDashboard)).Methods("GET")
	r.HandleFunc("/courses", loggedIn(h.HandleCourses)).Methods("GET")
	r.HandleFunc("/course/{id:[0-9]+}", loggedIn(h.HandleCourseDetail)).Methods("GET")
	r.HandleFunc("/course/{id:[0-9]+}/lessons/{lessonID:[0-9]+}/complete", loggedIn(h.HandleCompleteLesson)).Methods("POST")
	r.HandleFunc("/enroll/{courseID:[0-9]+}", loggedIn(h.HandleEnroll)).Methods("GET")
	r.HandleFunc("/scheduler", loggedIn(h.HandleScheduler)).Methods("GET", "POST")

	// --- Profile ---
	r.HandleFunc("/profile", loggedIn(h.HandleProfile)).Methods("GET")
	r.HandleFunc("/update-profile", loggedIn(h.HandleUpdateProfile)).Methods("POST")

	// --- Mock tests ---
	r.HandleFunc("/mock-tests", loggedIn(h.HandleMockTests)).Methods("GET")
	r.HandleFunc("/start-test/{courseID:[0-9]+}", loggedIn(h.HandleStartTest)).Methods("GET")
	r.HandleFunc("/submit-test/{courseID:[0-9]+}", loggedIn(h.HandleSubmitTest)).Methods("POST")

	// --- JSON API ---
	courseAPI := api.Service{Svc: h.Svc, Sessions: h.Sessions, Log: h.log}
	courseAPI.Register(r)

	// --- Forum ---
	r.HandleFunc("/forum", loggedIn(h.HandleForum)).Methods("GET")
	r.HandleFunc("/thread/{id:[0-9]+}", loggedIn(h.HandleThread)).Methods("GET")
	r.HandleFunc("/new-thread", loggedIn(h.HandleNewThreadPage)).Methods("GET")
	r.HandleFunc("/create-thread", loggedIn(h.HandleCreateThread)).Methods("POST")
	r.HandleFunc("/thread/{id:[0-9]+}/reply", loggedIn(h.HandleReply)).Methods("POST")

	return r
}
