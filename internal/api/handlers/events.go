package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gatherhub/server/internal/api/middleware"
	"github.com/gatherhub/server/internal/api/problem"
	"github.com/gatherhub/server/internal/domain/events"
	"github.com/gatherhub/server/internal/metrics"
)

type EventsHandler struct {
	Service *events.Service
	Env     string
}

func NewEventsHandler(service *events.Service, env string) *EventsHandler {
	return &EventsHandler{Service: service, Env: env}
}

type eventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type eventResponse struct {
	Message string       `json:"message"`
	Event   events.Event `json:"event"`
}

// Create handles POST /events (protected)
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Access denied. No token.", nil, h.Env)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	event, err := h.Service.Create(r.Context(), claims.UserID, req.Title, req.Description, req.Date)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}

	metrics.EventsCreated.Inc()
	writeJSON(w, http.StatusCreated, eventResponse{
		Message: "Event created successfully",
		Event:   event,
	})
}

// List handles GET /events
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.List(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// Get handles GET /events/{id}
func (h *EventsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.Service.GetByID(r.Context(), id)
	if err != nil {
		h.writeEventError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// Update handles PUT /events/{id} (protected)
func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Access denied. No token.", nil, h.Env)
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid request", err, h.Env)
		return
	}

	event, err := h.Service.Update(r.Context(), id, claims.UserID, events.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
	})
	if err != nil {
		h.writeEventError(w, r, err, "Not authorized to update this event")
		return
	}

	writeJSON(w, http.StatusOK, eventResponse{
		Message: "Event updated successfully",
		Event:   event,
	})
}

// Delete handles DELETE /events/{id} (protected)
func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Access denied. No token.", nil, h.Env)
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(r.Context(), id, claims.UserID); err != nil {
		h.writeEventError(w, r, err, "Not authorized to delete this event")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}

// Join handles POST /events/{id}/join (protected)
func (h *EventsHandler) Join(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Access denied. No token.", nil, h.Env)
		return
	}

	id, ok := h.eventID(w, r)
	if !ok {
		return
	}

	event, err := h.Service.Join(r.Context(), id, claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, events.ErrAlreadyJoined):
			metrics.EventJoins.WithLabelValues("already_joined").Inc()
			problem.Write(w, r, http.StatusBadRequest, problem.TypeConflict, "Already joined this event", err, h.Env)
		case errors.Is(err, events.ErrNotFound):
			metrics.EventJoins.WithLabelValues("not_found").Inc()
			problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
		default:
			problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
		}
		return
	}

	metrics.EventJoins.WithLabelValues("success").Inc()
	writeJSON(w, http.StatusOK, eventResponse{
		Message: "Successfully joined event",
		Event:   event,
	})
}

// eventID parses the {id} path segment. A non-numeric id cannot refer to any
// event, so it reports not found rather than a validation error.
func (h *EventsHandler) eventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(pathParam(r, "id"), 10, 64)
	if err != nil {
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
		return 0, false
	}
	return id, true
}

func (h *EventsHandler) writeEventError(w http.ResponseWriter, r *http.Request, err error, forbiddenTitle string) {
	switch {
	case errors.Is(err, events.ErrNotFound):
		problem.Write(w, r, http.StatusNotFound, problem.TypeNotFound, "Event not found", err, h.Env)
	case errors.Is(err, events.ErrForbidden) && forbiddenTitle != "":
		problem.Write(w, r, http.StatusForbidden, problem.TypeForbidden, forbiddenTitle, err, h.Env)
	default:
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Server error", err, h.Env)
	}
}
