// Package gateway implements the edge router: one coarse-grained
// authorization decision per route prefix, then transparent forwarding to
// the downstream service. The original bearer token is forwarded unchanged;
// every downstream service re-runs its own finer-grained decision and never
// treats the edge's allow as sufficient.
package gateway

import (
	"fmt"
	"net/url"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/shoplite/catalog-system/internal/api"
	apimiddleware "github.com/shoplite/catalog-system/internal/api/middleware"
	"github.com/shoplite/catalog-system/pkg/gatekeeper"
)

// Route maps a path prefix to a downstream target together with the
// coarse-grained requirement the edge enforces before forwarding.
type Route struct {
	Prefix      string
	Target      string
	Requirement gatekeeper.Requirement
}

// New builds the edge router. The gatekeeper instance is the same shared
// implementation the resource services use.
func New(gk *gatekeeper.Gatekeeper, routes []Route, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(log)

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	for _, r := range routes {
		target, err := url.Parse(r.Target)
		if err != nil {
			return nil, fmt.Errorf("gateway: parse target %q: %w", r.Target, err)
		}

		g := e.Group(r.Prefix, apimiddleware.Require(gk, r.Requirement))
		g.Use(echomiddleware.Proxy(echomiddleware.NewRoundRobinBalancer([]*echomiddleware.ProxyTarget{
			{URL: target},
		})))

		log.Info().Str("prefix", r.Prefix).Str("target", r.Target).Msg("gateway route registered")
	}

	return e, nil
}
