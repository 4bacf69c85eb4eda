package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"products.GO/api"
	"products.GO/core/errx"
)

func init() {
	api.RegisterRoute(RegisterHealthRoutes)
}

func RegisterHealthRoutes(e *echo.Echo, d *api.Deps) {
	e.GET("/health", func(c echo.Context) error {
		sqlDB, err := d.DB.DB()
		if err != nil {
			return errx.New(err, http.StatusServiceUnavailable, "database unavailable")
		}
		if err := sqlDB.PingContext(c.Request().Context()); err != nil {
			return errx.New(err, http.StatusServiceUnavailable, "database unavailable")
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
