package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shoplite/catalog-system/internal/api/metrics"
	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/pkg/gatekeeper"
)

const identityKey = "identity"

// Require enforces a gatekeeper requirement on every request passing
// through. The edge router and each resource service build their routes
// with this same middleware, so there is exactly one decision
// implementation in the system.
//
// Deny reasons map to 401 except InsufficientRole, which is 403. On allow
// the decoded identity snapshot is stored in the request context.
func Require(gk *gatekeeper.Gatekeeper, req gatekeeper.Requirement) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get("Authorization"))

			d := gk.Decide(raw, req)
			if !d.Allowed {
				metrics.AuthDecisionsTotal.WithLabelValues("deny", string(d.Reason)).Inc()
				return denyError(d.Reason)
			}
			metrics.AuthDecisionsTotal.WithLabelValues("allow", "none").Inc()

			if d.Identity != nil {
				c.Set(identityKey, *d.Identity)
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Require for this request.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func denyError(reason gatekeeper.DenyReason) *echo.HTTPError {
	switch reason {
	case gatekeeper.ReasonMissingToken:
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	case gatekeeper.ReasonInsufficientRole:
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	default:
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
}
