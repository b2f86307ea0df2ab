package middleware

import (
	"errors"
	"strings"

	"esolve-collections/internal/core/domain"
	"esolve-collections/internal/core/services"
	"esolve-collections/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by AuthMiddleware
const (
	LocalUser   = "user"
	LocalUserID = "userID"
	LocalRole   = "role"
)

// CredentialCookie is the cookie carrying the session credential
const CredentialCookie = "auth_token"

// extractToken reads the credential from the cookie, then the Authorization header
func extractToken(c *fiber.Ctx) string {
	if token := c.Cookies(CredentialCookie); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

func setUser(c *fiber.Ctx, user *domain.User) {
	c.Locals(LocalUser, user)
	c.Locals(LocalUserID, user.ID)
	c.Locals(LocalRole, user.Role)
}

// AuthMiddleware rejects requests without a valid credential
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return response.Unauthorized(c, "Credential required")
		}

		user, err := auth.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrTokenExpired) {
				return response.Unauthorized(c, "Credential expired")
			}
			return response.Unauthorized(c, "Invalid credential")
		}

		setUser(c, user)
		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(LocalRole).(domain.Role)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// CurrentUser returns the user set by AuthMiddleware, or nil
func CurrentUser(c *fiber.Ctx) *domain.User {
	user, _ := c.Locals(LocalUser).(*domain.User)
	return user
}
