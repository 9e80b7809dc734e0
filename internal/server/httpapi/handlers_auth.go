package httpapi

import (
	"errors"
	"net/http"

	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/server/models"
	"github.com/yukta/symposium/internal/server/services"
)

type userResponse struct {
	User models.PublicUser `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func (h *handler) signUp(w http.ResponseWriter, r *http.Request) {
	var in signUpRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	sess, err := h.auth.SignUp(r.Context(), in.Email, in.Password, in.Name)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	default:
		h.internalError(w, r, "sign up", err)
		return
	}

	h.startSession(w, sess)
}

func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	var in signInRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	sess, err := h.auth.SignIn(r.Context(), in.Email, in.Password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	default:
		h.internalError(w, r, "sign in", err)
		return
	}

	h.startSession(w, sess)
}

func (h *handler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context()); err != nil {
		h.logger.Warn(r.Context(), "sign out", "error", err)
	}
	h.cookie.clear(w)
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// me answers with the session's identity. It deliberately reports both a
// missing and a rejected token as 401, unlike the gated routes.
func (h *handler) me(w http.ResponseWriter, r *http.Request) {
	claims, err := h.auth.WhoAmI(r.Context(), tokenFromRequest(r, h.cookie.Name))
	switch {
	case err == nil:
	case errors.Is(err, common.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	default:
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: claims.User()})
}

func (h *handler) startSession(w http.ResponseWriter, sess *services.Session) {
	h.cookie.set(w, sess.Token, sess.ExpiresAt)
	writeJSON(w, http.StatusOK, userResponse{User: sess.User})
}

func (h *handler) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger.Error(r.Context(), op,
		"request_id", RequestIDFromContext(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
