package router

import (
	"time"

	"tableScout/app/echo-server/metrics"
	"tableScout/internal/rest"

	"github.com/labstack/echo/v4"
)

func SetupVenueRoutes(api *echo.Group, handler *rest.VenueHandler) {
	venues := api.Group("/venues")

	venues.GET("/search", handler.Search, searchMetrics)
	venues.GET("/search/debug", handler.SearchDebug, searchMetrics)
	venues.GET("/:id", handler.GetVenueByID)
}

func searchMetrics(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)

		metrics.SearchLatency.Observe(time.Since(start).Seconds())
		metrics.SearchRequests.Inc()

		return err
	}
}
