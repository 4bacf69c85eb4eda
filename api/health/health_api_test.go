package health

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"products.GO/api"
	"products.GO/core/errx"
	"products.GO/model/testdb"
)

func TestHealth(t *testing.T) {
	db := testdb.New(t)
	e := echo.New()
	e.HTTPErrorHandler = errx.HTTPErrorHandler
	RegisterHealthRoutes(e, &api.Deps{DB: db})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	sqlDB, _ := db.DB()
	sqlDB.Close()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status after close = %d, want 503", rec.Code)
	}
}
