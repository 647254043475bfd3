package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"github.com/hexagonal-games/backend/internal/identity"
)

// sessionKey is the echo context key holding the request's identity session.
const sessionKey = "identitySession"

// SetSession stores the identity session on the request context.
func SetSession(c echo.Context, p identity.Provider) {
	c.Set(sessionKey, p)
}

// SessionFrom returns the request's identity session. A request that never
// went through the auth middleware gets an empty anonymous session.
func SessionFrom(c echo.Context) identity.Provider {
	if p, ok := c.Get(sessionKey).(identity.Provider); ok {
		return p
	}
	return identity.NewFirebaseProvider(nil, time.Second)
}

// FirebaseAuthMiddleware gives every request its own identity session and,
// when a bearer ID token is sent, verifies it and binds the verified user
// into that session. The session is request-scoped: an identity bound here
// is never visible to any other request, and requests without a token carry
// an anonymous session so the composers fall back to the unknown-author
// sentinel.
func FirebaseAuthMiddleware(authClient *auth.Client, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := identity.NewFirebaseProvider(authClient, timeout)
			SetSession(c, session)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			token, err := authClient.VerifyIDToken(c.Request().Context(), tokenParts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Invalid or expired ID token: %v", err))
			}

			if err := session.Bind(c.Request().Context(), token.UID); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("Unknown user: %v", err))
			}

			return next(c)
		}
	}
}
