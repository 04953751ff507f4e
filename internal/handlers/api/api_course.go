// Package api exposes the course catalog as JSON for scripts and the
// in-page widgets.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/s/bitmentor/internal/models"
	"github.com/s/bitmentor/internal/service"
	"github.com/s/bitmentor/internal/session"
)

type Service struct {
	Svc      *service.Service
	Sessions *session.Manager
	Log      zerolog.Logger
}

// Register mounts the JSON endpoints under /api.
func (s *Service) Register(r *mux.Router) {
	r.HandleFunc("/api/courses", s.HandleCoursesAPI).Methods("GET")
	r.HandleFunc("/api/courses/{id:[0-9]+}/structure", s.GetCourseStructure).Methods("GET")
	r.HandleFunc("/api/courses/{id:[0-9]+}/questions", s.GetQuestionsAPI).Methods("GET")
	r.HandleFunc("/api/enroll", s.SubmitEnrollment).Methods("POST")
}

// ==========================================
// GET /api/courses
// ==========================================
func (s *Service) HandleCoursesAPI(w http.ResponseWriter, r *http.Request) {
	courses, err := s.Svc.Courses(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

type CourseStructureResponse struct {
	Course   models.Course   `json:"course"`
	Lessons  []models.Lesson `json:"lessons"`
	IsAuth   bool            `json:"is_auth"`
	Enrolled bool            `json:"enrolled"`
	Progress int             `json:"progress"`
	Done     []uint          `json:"done_lessons"`
}

// ==========================================
// GET /api/courses/{id}/structure
// ==========================================
func (s *Service) GetCourseStructure(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		jsonError(w, "course not found", http.StatusNotFound)
		return
	}

	// anonymous callers get the bare outline
	var userID uint
	if sess, err := s.Sessions.Current(r); err == nil {
		userID = sess.Identity.UserID
	}

	detail, err := s.Svc.CourseDetail(r.Context(), userID, id)
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := CourseStructureResponse{
		Course:  detail.Course,
		Lessons: detail.Lessons,
		IsAuth:  userID != 0,
		Done:    []uint{},
	}
	if resp.IsAuth {
		resp.Enrolled = detail.Enrolled
		resp.Progress = detail.Progress
		for _, l := range detail.Lessons {
			if detail.Done[l.ID] {
				resp.Done = append(resp.Done, l.ID)
			}
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ==========================================
// GET /api/courses/{id}/questions
// ==========================================
func (s *Service) GetQuestionsAPI(w http.ResponseWriter, r *http.Request) {
	id, ok := courseID(r)
	if !ok {
		jsonError(w, "course not found", http.StatusNotFound)
		return
	}

	questions, err := s.Svc.Questions(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

// ==========================================
// POST /api/enroll {"course_id": 1}
// ==========================================
func (s *Service) SubmitEnrollment(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Sessions.Current(r)
	if err != nil {
		if errors.Is(err, session.ErrUnauthenticated) {
			jsonError(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		s.fail(w, err)
		return
	}

	var req struct {
		CourseID uint `json:"course_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CourseID == 0 {
		jsonError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	if err := s.Svc.Enroll(r.Context(), sess.Identity.UserID, req.CourseID); err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "enrolled"})
}

func (s *Service) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrNotFound) {
		jsonError(w, "course not found", http.StatusNotFound)
		return
	}
	s.Log.Error().Err(err).Msg("api request failed")
	jsonError(w, "internal error", http.StatusInternalServerError)
}

func courseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 0)
	return uint(id), err == nil && id != 0
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}
