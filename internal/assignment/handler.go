package assignment

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/response"
)

// Handler handles HTTP requests for assignments
type Handler struct {
	service *Service
}

// NewHandler creates a new assignment handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for assignment endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/add", h.Add)
	r.Post("/list", h.List)

	return r
}

// Add handles POST /assignments/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	a, err := h.service.Create(r.Context(), req.UserID, req.Name, req.Module, req.DueDate, req.TimeDueSeconds, req.TimeNeeded)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, AddAssignmentResponse{
		Envelope:   response.Envelope{Success: true, Message: "Assignment added successfully!"},
		Assignment: a,
	})
}

// List handles POST /assignments/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var req ListAssignmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	assignments, err := h.service.ListByUserID(r.Context(), req.UserID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if len(assignments) == 0 {
		response.NotFound(w, "No assignment found!")
		return
	}

	response.JSON(w, http.StatusOK, ListAssignmentsResponse{
		Envelope:    response.Envelope{Success: true, Message: "Assignments retrieved!"},
		Assignments: assignments,
	})
}
