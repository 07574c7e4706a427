package handlers

import (
	"net/http"

	"github.com/contactbook/engine/internal/api/middleware"
	"github.com/contactbook/engine/internal/api/types"
	"github.com/contactbook/engine/internal/services"
)

type AuthHandler struct {
	auth services.AuthService
}

func NewAuthHandler(auth services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body types.RegisterRequest true "account"
// @Success  200 {object} types.TokenResponse
// @Failure  400 {object} types.APIResponse
// @Router   /api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.auth.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(sess))
}

// Login godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body types.LoginRequest true "credentials"
// @Success  200 {object} types.TokenResponse
// @Failure  401 {object} types.APIResponse
// @Router   /api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.auth.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(sess))
}

// Me godoc
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} models.UserSummary
// @Failure  404 {object} types.APIResponse
// @Router   /api/auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	u, err := h.auth.Get(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u.Summary())
}

func tokenResponse(s *services.Session) types.TokenResponse {
	return types.TokenResponse{
		AccessToken: s.Token,
		TokenType:   "bearer",
		User:        s.User.Summary(),
	}
}
