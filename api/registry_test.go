package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"products.GO/core/registry"
)

func TestRegistry_Register_Apply(t *testing.T) {
	RegisterGET("/test/registry/check", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)

	e := echo.New()
	ApplyRoutes(e, &Deps{})

	req := httptest.NewRequest(http.MethodGet, "/test/registry/check", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRegistry_Module_Apply(t *testing.T) {
	var got *Deps
	RegisterModule(func(g *echo.Group, d *Deps) {
		got = d
		g.GET("/test/module", func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
	})
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)

	e := echo.New()
	deps := &Deps{}
	ApplyModules(e.Group("/v1"), deps)
	if got != deps {
		t.Error("module did not receive deps")
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/test/module", nil))
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}

func TestRegistry_LockedPanics(t *testing.T) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
	defer registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when registering after lock")
		}
	}()
	RegisterModule(func(*echo.Group, *Deps) {})
}
