package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/s/bitmentor/internal/auth"
	"github.com/s/bitmentor/internal/models"
	"github.com/s/bitmentor/internal/service"
	"github.com/s/bitmentor/internal/session"
)

func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", h.page(r, "Log in"))
}

func (h *Handler) HandleSignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", h.page(r, "Sign up"))
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	in := service.RegisterInput{
		Name:     strings.TrimSpace(r.PostFormValue("fullname")),
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Password: r.PostFormValue("password"),
	}
	user, err := h.Svc.Register(r.Context(), in)
	if err != nil {
		if !isFormError(err) {
			h.fail(w, r, err)
			return
		}
		data := h.page(r, "Sign up")
		data.Error = err.Error()
		data.Form = map[string]string{"fullname": in.Name, "email": in.Email}
		h.render(w, r, formStatus(err), "signup", data)
		return
	}

	h.signIn(w, r, user)
}

func (h *Handler) HandleAuth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	user, err := h.Svc.Authenticate(r.Context(), email, r.PostFormValue("password"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.fail(w, r, err)
			return
		}
		data := h.page(r, "Log in")
		data.Error = err.Error()
		data.Form = map[string]string{"email": email}
		h.render(w, r, http.StatusUnauthorized, "login", data)
		return
	}

	h.signIn(w, r, user)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(w, r); err != nil {
		h.log.Warn().Err(err).Msg("destroy session")
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.Config == nil {
		h.HandleNotFound(w, r)
		return
	}
	state := auth.NewState(w, h.secure)
	http.Redirect(w, r, h.Config.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.Config == nil {
		h.HandleNotFound(w, r)
		return
	}
	if err := auth.VerifyState(w, r); err != nil {
		h.renderError(w, r, http.StatusUnauthorized, "Sign-in expired, please try again.")
		return
	}

	profile, err := auth.FetchGoogleProfile(r.Context(), h.Config, r.URL.Query().Get("code"))
	if err != nil {
		h.log.Warn().Err(err).Msg("google sign-in failed")
		h.renderError(w, r, http.StatusBadGateway, "Google sign-in failed, please try again.")
		return
	}

	user, err := h.Svc.SignInWithGoogle(r.Context(), profile)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.signIn(w, r, user)
}

// signIn starts a session for user and sends them to the dashboard.
func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, user *models.User) {
	if _, err := h.Sessions.Create(w, r, session.Identity{UserID: user.ID, UserName: user.Name}); err != nil {
		h.fail(w, r, err)
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
