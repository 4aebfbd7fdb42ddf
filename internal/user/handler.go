package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grindhub/grindhub/pkg/middleware"
	"github.com/grindhub/grindhub/pkg/response"
)

// Handler handles HTTP requests for accounts
type Handler struct {
	service   *Service
	jwtSecret string
}

// NewHandler creates a new user handler
func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret}
}

// Routes returns the router for account endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/get", h.Get)

	return r
}

// Signup handles POST /auth/signup
// @Summary      Create an account
// @Description  Register a new user with email, username, and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Signup request"
// @Success      201 {object} SignupResponse
// @Failure      400 {object} response.Envelope
// @Router       /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Email == "" || req.Username == "" || req.Password == "" {
		response.BadRequest(w, "Missing required fields: email, username, and password are all required.")
		return
	}

	u, err := h.service.Signup(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			response.BadRequest(w, "User already exists")
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusCreated, SignupResponse{
		Envelope: response.Envelope{Success: true, Message: "User created successfully"},
		User:     u,
	})
}

// Login handles POST /auth/login
// @Summary      Log in
// @Description  Verify credentials and return a session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} LoginResponse
// @Failure      401 {object} response.Envelope
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid credentials")
			return
		}
		response.InternalError(w)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, u.ID, u.Email)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, LoginResponse{
		Envelope: response.Envelope{Success: true, Message: "Login success!"},
		Token:    token,
	})
}

// Get handles POST /auth/get
// @Summary      Get a user profile
// @Description  Retrieve a user's profile by id
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body GetUserRequest true "User lookup request"
// @Success      200 {object} GetUserResponse
// @Failure      404 {object} response.Envelope
// @Router       /auth/get [post]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	var req GetUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	u, err := h.service.GetByID(r.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "No user found!")
			return
		}
		response.InternalError(w)
		return
	}

	response.JSON(w, http.StatusOK, GetUserResponse{
		Envelope: response.Envelope{Success: true, Message: "User retrieved!"},
		User:     u,
	})
}
