package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafehub/gateway/internal/api/middleware"
	"github.com/cafehub/gateway/internal/core/domain"
)

// callerIdentity extracts the verified identity and fast-fails with
// ErrUnauthenticated when the caller is anonymous. Handlers behind
// RequireAuth still call this so an operation can never run with a zero
// identity even if a route is miswired.
func callerIdentity(c echo.Context) (domain.Identity, error) {
	identity := middleware.IdentityFrom(c)
	if identity.IsAnonymous() {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}
