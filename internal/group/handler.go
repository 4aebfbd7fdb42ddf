package group

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/create", h.Create)
	r.Post("/join", h.Join)
	r.Post("/list", h.List)
	r.Post("/summary", h.Summary)

	return r
}

// Create handles POST /groups/create
// @Summary      Create a new group
// @Description  Create a group with a freshly generated invitation code
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} CreateGroupResponse
// @Failure      400 {object} response.Envelope
// @Router       /groups/create [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, err := h.service.Create(r.Context(), req.GroupName, req.GroupDescription)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, CreateGroupResponse{
		Envelope: response.Envelope{Success: true, Message: "Group added successfully!"},
		Group:    g,
	})
}

// Join handles POST /groups/join
// @Summary      Join a group
// @Description  Join the group that the invitation code resolves to
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body JoinGroupRequest true "Join request"
// @Success      201 {object} JoinGroupResponse
// @Failure      404 {object} response.Envelope
// @Router       /groups/join [post]
func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req JoinGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	m, err := h.service.Join(r.Context(), req.InvitationCode, req.UserID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, "Invitation code doesnt belong to any group")
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, JoinGroupResponse{
		Envelope:   response.Envelope{Success: true, Message: "Person added successfully!"},
		Membership: m,
	})
}

// List handles POST /groups/list
// @Summary      List a user's groups
// @Description  Retrieve every group the user belongs to
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body ListGroupsRequest true "Group listing request"
// @Success      200 {object} ListGroupsResponse
// @Failure      404 {object} response.Envelope
// @Router       /groups/list [post]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var req ListGroupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	listings, err := h.service.ListByUserID(r.Context(), req.UserID)
	if err != nil {
		response.InternalError(w)
		return
	}
	// zero groups is reported as not-found; the mobile client relies on it
	if len(listings) == 0 {
		response.NotFound(w, "No groups found!")
		return
	}

	response.JSON(w, http.StatusOK, ListGroupsResponse{
		Envelope: response.Envelope{Success: true, Message: "Group retrieved!"},
		Groups:   listings,
	})
}

// Summary handles POST /groups/summary
// @Summary      Get a group summary
// @Description  Retrieve a group's name, description, invitation code, and members
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body SummaryRequest true "Group summary request"
// @Success      200 {object} SummaryResponse
// @Failure      404 {object} response.Envelope
// @Router       /groups/summary [post]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	g, members, err := h.service.Summary(r.Context(), req.GroupID)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, "No description found!")
			return
		}
		response.InternalError(w)
		return
	}
	// same quirk as List: a memberless group reads as not-found on the wire
	if len(members) == 0 {
		response.NotFound(w, "No description found!")
		return
	}

	response.JSON(w, http.StatusOK, SummaryResponse{
		Envelope:         response.Envelope{Success: true, Message: "Description retrieved!"},
		GroupName:        g.Name,
		GroupDescription: g.Description,
		InvitationCode:   g.InvitationCode,
		Members:          members,
	})
}
