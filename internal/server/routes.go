package server

import (
	"github.com/labstack/echo/v4"

	"github.com/stelehq/stele/internal/server/middleware"
	"github.com/stelehq/stele/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Search routes
	apiRoutes.POST("/search", routes.SearchHandler)
	apiRoutes.POST("/search/raw", routes.SearchRawHandler)

	// Subject routes
	apiRoutes.GET("/subjects/:id", routes.GetSubjectHandler)
}
