// Package custom holds site-specific extensions registered through the api
// and cmd registries. Import it for side effects.
package custom

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"products.GO/api"
	"products.GO/cmd"
	"products.GO/config"
	"products.GO/core/errx"
	productRepo "products.GO/model/repository/product"
)

// Stats is the catalog size.
type Stats struct {
	Products   int64 `json:"products"`
	Alternates int64 `json:"alternates"`
}

var openDB = config.NewDB

func init() {
	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "catalog:stats",
		Short: "Print the number of products and alternate UPCs",
		RunE: func(c *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			p, a, err := productRepo.NewProductRepository(db).Count(c.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(c.OutOrStdout(), "products: %d\nalternates: %d\n", p, a)
			return nil
		},
	})

	// HTTP route
	api.RegisterRoute(RegisterStatsRoutes)
}

func RegisterStatsRoutes(e *echo.Echo, d *api.Deps) {
	e.GET("/stats", func(c echo.Context) error {
		p, a, err := productRepo.NewProductRepository(d.DB).Count(c.Request().Context())
		if err != nil {
			return errx.Internal(err)
		}
		return c.JSON(http.StatusOK, Stats{Products: p, Alternates: a})
	})
}
