package message

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/response"
)

// Handler handles HTTP requests for the message log
type Handler struct {
	service *Service
}

// NewHandler creates a new message handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for message endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/send", h.Send)
	r.Post("/list", h.List)

	return r
}

// Send handles POST /messages/send
// @Summary      Send a chat message
// @Description  Append a message to a group's log and push it to connected members
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body SendMessageRequest true "Message to send"
// @Success      201 {object} SendMessageResponse
// @Failure      400 {object} response.Envelope
// @Failure      404 {object} response.Envelope
// @Router       /messages/send [post]
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	m, err := h.service.Append(r.Context(), req.GroupID, req.UserID, req.MessageContent)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(w, "Missing required fields: groupid, userid, and messagecontent are all required.")
		case errors.Is(err, ErrGroupNotFound), errors.Is(err, ErrUserNotFound):
			response.NotFound(w, err.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.JSON(w, http.StatusCreated, SendMessageResponse{
		Envelope:   response.Envelope{Success: true, Message: "Message added successfully!"},
		NewMessage: m,
	})
}

// List handles POST /messages/list
// @Summary      List a group's messages
// @Description  Retrieve a group's full message history in chronological order
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body ListMessagesRequest true "Message listing request"
// @Success      200 {object} ListMessagesResponse
// @Failure      404 {object} response.Envelope
// @Router       /messages/list [post]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var req ListMessagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	messages, err := h.service.ListByGroup(r.Context(), req.GroupID)
	if err != nil {
		response.InternalError(w)
		return
	}
	// an empty log is reported as not-found; the mobile client relies on it
	if len(messages) == 0 {
		response.NotFound(w, "No messages found!")
		return
	}

	response.JSON(w, http.StatusOK, ListMessagesResponse{
		Envelope: response.Envelope{Success: true, Message: "Messages retrieved!"},
		Messages: messages,
	})
}
