package handlers

import (
	"net/http"
	"strconv"

	"github.com/s/bitmentor/internal/service"
	"github.com/s/bitmentor/internal/web"
)

func (h *Handler) HandleMockTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.Svc.Tests(r.Context(), identity(r).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Mock tests")
	data.Tests = tests
	h.render(w, r, http.StatusOK, "mock-tests", data)
}

func (h *Handler) HandleStartTest(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseID")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}

	questions, err := h.Svc.Questions(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Test")
	data.CourseID = courseID
	data.Questions = questions
	h.render(w, r, http.StatusOK, "test-player", data)
}

// HandleSubmitTest reads one radio group per question of the course. Fields
// that do not belong to the course are ignored.
func (h *Handler) HandleSubmitTest(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(r, "courseID")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	questions, err := h.Svc.Questions(r.Context(), courseID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	answerIDs := make([]uint, 0, len(questions))
	for _, q := range questions {
		for _, raw := range r.PostForm[web.QuestionField(q.ID)] {
			id, err := strconv.ParseUint(raw, 10, 0)
			if err != nil {
				h.fail(w, r, service.ErrForeignAnswer)
				return
			}
			answerIDs = append(answerIDs, uint(id))
		}
	}

	result, err := h.Svc.ScoreSubmission(r.Context(), identity(r).UserID, courseID, answerIDs)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Results")
	data.Result = result
	h.render(w, r, http.StatusOK, "results", data)
}
