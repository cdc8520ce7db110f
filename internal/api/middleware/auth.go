package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/core/domain"
	"github.com/cafehub/gateway/internal/core/ports"
)

// CredentialCookie is the cookie carrying the signed caller credential.
const CredentialCookie = "cafe_token"

// identityKey is the echo context key the verified Identity travels under.
// The identity is strictly request-scoped; it is never stashed in any
// process-wide state.
const identityKey = "identity"

// CredentialAuth verifies the caller credential (cookie first, then a bearer
// Authorization header) and stores the resulting Identity in the request
// context. Verification never fails the request: an invalid, expired, or
// revoked credential degrades the caller to anonymous and clears the cookie.
func CredentialAuth(credentials ports.CredentialService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, fromCookie := extractToken(c)
			if token == "" {
				c.Set(identityKey, domain.Identity{})
				return next(c)
			}

			identity, ok := credentials.Verify(c.Request().Context(), token)
			if !ok {
				if fromCookie {
					clearCredentialCookie(c)
				}
				c.Set(identityKey, domain.Identity{})
				return next(c)
			}

			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// RequireAuth gates an operation on an authenticated caller. Anonymous
// callers get 401 with an explicit redirect hint, never a silent empty
// response.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if IdentityFrom(c).IsAnonymous() {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error":    "authentication required",
					"redirect": "/login",
				})
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the verified caller identity, or the zero (anonymous)
// Identity when the middleware has not run or verification failed.
func IdentityFrom(c echo.Context) domain.Identity {
	identity, _ := c.Get(identityKey).(domain.Identity)
	return identity
}

// SetCredentialCookie installs the signed credential as an HTTP-only cookie.
func SetCredentialCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     CredentialCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCredentialCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CredentialCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// ClearCredentialCookie removes the credential cookie (logout path).
func ClearCredentialCookie(c echo.Context) {
	clearCredentialCookie(c)
}

func extractToken(c echo.Context) (token string, fromCookie bool) {
	if cookie, err := c.Cookie(CredentialCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], false
}
