package handlers

import (
	"net/http"
	"strconv"

	"github.com/s/bitmentor/internal/service"
)

func (h *Handler) HandleForum(w http.ResponseWriter, r *http.Request) {
	threads, err := h.Svc.Threads(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, "Forum")
	data.Threads = threads
	h.render(w, r, http.StatusOK, "forum", data)
}

func (h *Handler) HandleThread(w http.ResponseWriter, r *http.Request) {
	threadID, ok := pathID(r, "id")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	h.renderThread(w, r, threadID, http.StatusOK, "")
}

func (h *Handler) HandleNewThreadPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "create-thread", h.page(r, "New thread"))
}

func (h *Handler) HandleCreateThread(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	in := service.ThreadInput{
		Title:   r.PostFormValue("title"),
		Content: r.PostFormValue("content"),
	}
	threadID, err := h.Svc.CreateThread(r.Context(), identity(r).UserID, in)
	if err != nil {
		if !isFormError(err) {
			h.fail(w, r, err)
			return
		}
		data := h.page(r, "New thread")
		data.Error = err.Error()
		data.Form = map[string]string{"title": in.Title, "content": in.Content}
		h.render(w, r, formStatus(err), "create-thread", data)
		return
	}
	http.Redirect(w, r, threadURL(threadID), http.StatusSeeOther)
}

func (h *Handler) HandleReply(w http.ResponseWriter, r *http.Request) {
	threadID, ok := pathID(r, "id")
	if !ok {
		h.HandleNotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	in := service.ReplyInput{Content: r.PostFormValue("content")}
	if _, err := h.Svc.Reply(r.Context(), threadID, identity(r).UserID, in); err != nil {
		if isFormError(err) {
			h.renderThread(w, r, threadID, formStatus(err), err.Error())
			return
		}
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, threadURL(threadID), http.StatusSeeOther)
}

func (h *Handler) renderThread(w http.ResponseWriter, r *http.Request, threadID uint, status int, message string) {
	thread, err := h.Svc.Thread(r.Context(), threadID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	posts, err := h.Svc.Posts(r.Context(), threadID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := h.page(r, thread.Title)
	data.Thread = thread
	data.Posts = posts
	data.Error = message
	h.render(w, r, status, "thread", data)
}

func threadURL(id uint) string {
	return "/thread/" + strconv.FormatUint(uint64(id), 10)
}
