package server

import "github.com/labstack/echo/v4"

// RegisterRoutes wires the county_data endpoint and the health check onto
// the provided Echo instance. The /api prefix alias matches the routing
// used by serverless deployments of the original dataset API.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/healthz", Health)
	e.POST("/county_data", h.CountyData)
	e.POST("/api/county_data", h.CountyData)
}
