package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yukta/symposium/internal/common"
	"github.com/yukta/symposium/internal/server/models"
)

type eventsResponse struct {
	Events []models.Event `json:"events"`
}

type eventResponse struct {
	Event models.Event `json:"event"`
}

type registrationsResponse struct {
	Registrations []string `json:"registrations"`
}

func (h *handler) listEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, eventsResponse{Events: h.catalog.All()})
}

func (h *handler) getEvent(w http.ResponseWriter, r *http.Request) {
	e, err := h.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	writeJSON(w, http.StatusOK, eventResponse{Event: e})
}

func (h *handler) register(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var in registerRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}
	if err := in.validate(); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	_, err := h.registrations.Register(r.Context(), claims, in.EventID)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrAlreadyRegistered):
		writeError(w, http.StatusConflict, "Already registered")
		return
	default:
		h.logger.Error(r.Context(), "register",
			"request_id", RequestIDFromContext(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *handler) myRegistrations(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ids, err := h.registrations.ListMine(r.Context(), claims)
	if err != nil {
		h.internalError(w, r, "list registrations", err)
		return
	}

	writeJSON(w, http.StatusOK, registrationsResponse{Registrations: ids})
}
