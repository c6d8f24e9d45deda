package server

import (
	"github.com/labstack/echo/v4"

	"papergraph/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api")

	// Graph query routes
	apiRoutes.GET("/causal-chains", routes.GetCausalChainsHandler)
	apiRoutes.GET("/shared-effects", routes.GetSharedEffectsHandler)
}
