package handlers

import (
	"errors"
	"time"

	"esolve-collections/internal/adapters/http/middleware"
	"esolve-collections/internal/config"
	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	session *services.SessionService
	cfg     *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(session *services.SessionService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		session: session,
		cfg:     cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login
// @Summary Login
// @Description Check email and password against the account directory and start the session
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	user, err := h.session.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, domain.ErrLoginSuperseded):
			return response.Conflict(c, "A newer login or logout replaced this login")
		default:
			zap.L().Error("Login failed", zap.Error(err))
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setAuthCookie(c, user.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"token": user.Token,
		"user":  user,
	})
}

// Logout handles user logout
// @Summary Logout
// @Description End the session and clear the persisted credential
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.session.Logout(c.UserContext())
	h.clearAuthCookie(c)

	return response.Success(c, "Logged out successfully", nil)
}

// Session returns the current session state
// @Summary Session state
// @Description Current signed-in user and authentication flags
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/session [get]
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	return response.Success(c, "Session retrieved successfully", h.session.State())
}

// Me returns the user behind the request credential
// @Summary Get current user
// @Description Get the user the request credential belongs to
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CredentialCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.Credential.TTL.Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

func (h *AuthHandler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.CredentialCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
