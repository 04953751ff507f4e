package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/s/bitmentor/internal/scheduler"
	"github.com/s/bitmentor/internal/service"
)

const maxWeeklyHours = 7 * 24

func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.Svc.Enrollments(r.Context(), identity(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Dashboard")
	data.Enrollments = enrollments
	h.render(w, r, http.StatusOK, "dashboard", data)
}

func (h *Handler) HandleCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Svc.Courses(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Courses")
	data.Courses = courses
	h.render(w, r, http.StatusOK, "courses", data)
}

func (h *Handler) HandleCourseDetail(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "id")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	detail, err := h.Svc.CourseDetail(r.Context(), identity(r).UserID, courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, detail.Course.Name)
	data.Detail = detail
	h.render(w, r, http.StatusOK, "course-detail", data)
}

func (h *Handler) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseID")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	if err := h.Svc.Enroll(r.Context(), identity(r).UserID, courseID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) HandleCompleteLesson(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "id")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	lessonID, ok := pathID(r, "lessonID")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	if err := h.Svc.CompleteLesson(r.Context(), identity(r).UserID, courseID, lessonID); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/course/"+strconv.FormatUint(uint64(courseID), 10), http.StatusSeeOther)
}

func (h *Handler) HandleScheduler(w http.ResponseWriter, r *http.Request) {
	data := h.page(r, "Scheduler")
	data.Goal = string(scheduler.GoalPython)
	if r.Method != http.MethodPost {
		h.render(w, r, http.StatusOK, "scheduler", data)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}
	goal := strings.TrimSpace(r.PostFormValue("goal"))
	raw := strings.TrimSpace(r.PostFormValue("hours"))
	data.Goal = goal
	data.Form = map[string]string{"hours": raw}

	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 0 || hours > maxWeeklyHours {
		data.Error = "Hours per week must be a whole number between 0 and 168."
		h.render(w, r, http.StatusBadRequest, "scheduler", data)
		return
	}

	data.Schedule = scheduler.Build(scheduler.Goal(goal), hours)
	h.render(w, r, http.StatusOK, "scheduler", data)
}

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	h.renderProfile(w, r, http.StatusOK, "")
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	in := service.ProfileInput{
		Name: r.PostFormValue("fullname"),
		Bio:  r.PostFormValue("bio"),
	}
	user, err := h.Svc.UpdateProfile(r.Context(), identity(r).UserID, in)
	if err != nil {
		if isFormError(err) {
			h.renderProfile(w, r, formStatus(err), err.Error())
			return
		}
		h.fail(w, r, err)
		return
	}

	if s, ok := sessionFrom(r); ok {
		if err := h.Sessions.Rename(r.Context(), s.Token, user.Name); err != nil {
			h.log.Warn().Err(err).Uint("user_id", user.ID).Msg("refresh session name")
		}
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func (h *Handler) renderProfile(w http.ResponseWriter, r *http.Request, status int, message string) {
	profile, err := h.Svc.Profile(r.Context(), identity(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Profile")
	data.Profile = profile
	data.Error = message
	h.render(w, r, status, "profile", data)
}
