package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoplite/catalog-system/internal/api/middleware"
	"github.com/shoplite/catalog-system/internal/core/domain"
)

// requestIdentity extracts the identity injected by the Require middleware
// and fast-fails before any service call. A missing identity on a protected
// route means the middleware never ran, which is a wiring bug surfaced as 401.
func requestIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok || id.Subject == "" {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
