package module

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/response"
)

// AddModuleRequest represents the request to add a module
type AddModuleRequest struct {
	Module
}

// ListModulesRequest represents the request for a user's modules
type ListModulesRequest struct {
	UserID string `json:"userid"`
}

// AddModuleResponse is the wire shape for a created module
type AddModuleResponse struct {
	response.Envelope
	Module *Module `json:"module"`
}

// ListModulesResponse is the wire shape for a user's modules
type ListModulesResponse struct {
	response.Envelope
	Modules []*Module `json:"modules"`
}

// Handler handles HTTP requests for course modules
type Handler struct {
	service *Service
}

// NewHandler creates a new module handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for module endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/add", h.Add)
	r.Post("/list", h.List)

	return r
}

// Add handles POST /modules/add
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	m := req.Module
	created, err := h.service.Create(r.Context(), &m)
	if err != nil {
		if errors.Is(err, ErrMissingFields) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, AddModuleResponse{
		Envelope: response.Envelope{Success: true, Message: "Module added successfully!"},
		Module:   created,
	})
}

// List handles POST /modules/list
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var req ListModulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	modules, err := h.service.ListByUserID(r.Context(), req.UserID)
	if err != nil {
		response.InternalError(w)
		return
	}
	if len(modules) == 0 {
		response.NotFound(w, "No modules found!")
		return
	}

	response.JSON(w, http.StatusOK, ListModulesResponse{
		Envelope: response.Envelope{Success: true, Message: "Modules retrieved!"},
		Modules:  modules,
	})
}
