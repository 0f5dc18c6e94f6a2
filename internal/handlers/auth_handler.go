package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mssola/user_agent"

	"github.com/gatehouse/gatehouse/internal/auth"
	"github.com/gatehouse/gatehouse/internal/logger"
	"github.com/gatehouse/gatehouse/internal/middleware"
	usermodel "github.com/gatehouse/gatehouse/internal/models/user"
	"github.com/gatehouse/gatehouse/internal/service"
)

type AuthHandler struct {
	svc       *service.AuthService
	transport *auth.SessionTransport
	log       *logger.Logger
}

func NewAuthHandler(svc *service.AuthService, transport *auth.SessionTransport) *AuthHandler {
	return &AuthHandler{
		svc:       svc,
		transport: transport,
		log:       logger.New("auth-handler"),
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req usermodel.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.Signup(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Account created",
		Data:    map[string]interface{}{"user": user},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req usermodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pair, err := h.svc.Login(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	for _, c := range h.transport.Attach(pair.AccessToken, pair.RefreshToken) {
		http.SetCookie(w, c)
	}

	ua := user_agent.New(r.UserAgent())
	browser, _ := ua.Browser()
	h.log.Info("User %s logged in (%s, %s)", pair.UserID, browser, ua.OS())

	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    nil,
		Message: "Account login successfully",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	for _, c := range h.transport.Clear() {
		http.SetCookie(w, c)
	}

	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    nil,
		Message: "Logged out",
	})
}

// Me returns the profile of the authenticated user. RequireAuth runs first,
// so the context always carries an identity here.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	userID := middleware.GetUserID(r.Context())

	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		h.log.Error("Failed to get user %s: %v", userID, err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: "Fetch authenticated user details",
		Data:    map[string]interface{}{"user": user},
	})
}

func (h *AuthHandler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "Email address already in use.")
	case errors.Is(err, service.ErrUsernameTaken):
		respondError(w, http.StatusBadRequest, "Someone already taken this username.")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, "Invalid credentials")
	default:
		h.log.Error("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
