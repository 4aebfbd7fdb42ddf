package class

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/response"
)

// AddClassRequest represents the request to add a class
type AddClassRequest struct {
	Class
}

// ListClassesRequest represents the request for a user's classes
type ListClassesRequest struct {
	UserID string `json:"userid"`
}

// AddClassResponse is the wire shape for a created class
type AddClassResponse struct {
	response.Envelope
	NewClass *Class `json:"newclass"`
}

// ListClassesResponse is the wire shape for a user's classes
type ListClassesResponse struct {
	response.Envelope
	Classes []*Class `json:"classes"`
}

// Handler handles HTTP requests for classes
type Handler struct {
	service *Service
}

// NewHandler creates a new class handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for class endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/add", h.Add)
	r.Post("/list", h.List)

	return r
}

// Add handles POST /classes/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddClassRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	c := req.Class
	created, err := h.service.Create(r.Context(), &c)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, AddClassResponse{
		Envelope: response.Envelope{Success: true, Message: "Class added successfully!"},
		NewClass: created,
	})
}

// List handles POST /classes/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var req ListClassesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	classes, err := h.service.ListByUserID(r.Context(), req.UserID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if len(classes) == 0 {
		response.NotFound(w, "No class found!")
		return
	}

	response.JSON(w, http.StatusOK, ListClassesResponse{
		Envelope: response.Envelope{Success: true, Message: "Class retrieved!"},
		Classes:  classes,
	})
}
