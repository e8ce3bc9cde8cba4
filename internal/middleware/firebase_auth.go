package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

// ContextKeyUserID is where the middleware stores the verified Firebase UID.
const ContextKeyUserID = "firebaseUID"

// FirebaseAuthMiddleware creates an Echo middleware that verifies Firebase
// ID tokens and stores the UID in the request context.
func FirebaseAuthMiddleware(authClient *auth.Client) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is missing")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired ID token")
			}

			c.Set(ContextKeyUserID, token.UID)
			return next(c)
		}
	}
}

// UserID extracts the verified Firebase UID stored by the middleware.
func UserID(c echo.Context) string {
	uid, _ := c.Get(ContextKeyUserID).(string)
	return uid
}
