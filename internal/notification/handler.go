package notification

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/response"
)

// UpdateRequest represents a single preference toggle
type UpdateRequest struct {
	UserID string `json:"userid"`
	Field  string `json:"field"`
	Value  bool   `json:"value"`
}

// UpdateResponse is the wire shape for an updated preference set
type UpdateResponse struct {
	response.Envelope
	User *Preferences `json:"user"`
}

// Handler handles HTTP requests for notification preferences
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for notification endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/update", h.Update)
	return r
}

// Update handles POST /notifications/update
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), req.UserID, req.Field, req.Value)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidField):
			response.BadRequest(w, "Invalid notification field.")
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(w, "User not found.")
		default:
			response.InternalError(w)
		}
		return
	}

	response.JSON(w, http.StatusOK, UpdateResponse{
		Envelope: response.Envelope{Success: true, Message: "Notification setting updated."},
		User:     p,
	})
}
