// Package middleware provides reusable HTTP middleware: bearer token
// authentication, redis response caching and redis rate limiting.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ticketr/internal/repository"
	"ticketr/internal/utils"
)

// Context keys populated by JWTAuth.
const (
	CtxUserID = "user_id"
	CtxUser   = "user"
)

// JWTAuth validates a Bearer access token and loads the token's subject
// from the user store. A token whose subject no longer exists is
// rejected, so deleting an account immediately invalidates its
// outstanding tokens. The loaded user is stored in the context under
// CtxUser for handlers such as /auth/me.
func JWTAuth(secret string, users repository.UserStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			uid, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid token"})
			}

			c.Set(CtxUserID, u.ID)
			c.Set(CtxUser, u)
			return next(c)
		}
	}
}
