package product

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"products.GO/api"
	"products.GO/core/errx"
	productService "products.GO/service/product"
)

const notFoundMessage = "Product not found"

func init() {
	api.RegisterModule(RegisterProductRoutes)
}

// RegisterProductRoutes mounts GET /product/:upc on the versioned group.
func RegisterProductRoutes(g *echo.Group, d *api.Deps) {
	g.GET("/product/:upc", GetProductHandler(d.Lookup))
}

// GetProductHandler looks up a product by any of its UPCs.
func GetProductHandler(svc *productService.LookupService) echo.HandlerFunc {
	return func(c echo.Context) error {
		upc := c.Param("upc")
		if !productService.ValidUPC(upc) {
			return errx.New(nil, http.StatusUnprocessableEntity, "upc must be exactly 14 digits")
		}

		p, err := svc.Lookup(c.Request().Context(), upc)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, p)
		case errors.Is(err, productService.ErrNotFound):
			return errx.New(err, http.StatusNotFound, notFoundMessage)
		default:
			return errx.Internal(err)
		}
	}
}
