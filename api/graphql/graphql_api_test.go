package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"products.GO/api"
	"products.GO/model/testdb"
	productService "products.GO/service/product"
)

const productQuery = `query($upc: String!) {
  product(upc: $upc) {
    name upc item_number price supplier inventory_level inventory_updated_at
    variants { upc type case_pack }
  }
}`

type gqlVariant struct {
	UPC      string   `json:"upc"`
	Type     string   `json:"type"`
	CasePack *float64 `json:"case_pack"`
}

type gqlProduct struct {
	Name               string       `json:"name"`
	UPC                string       `json:"upc"`
	ItemNumber         int          `json:"item_number"`
	Price              string       `json:"price"`
	Supplier           string       `json:"supplier"`
	InventoryLevel     int          `json:"inventory_level"`
	InventoryUpdatedAt string       `json:"inventory_updated_at"`
	Variants           []gqlVariant `json:"variants"`
}

type gqlResponse struct {
	Data struct {
		Product *gqlProduct `json:"product"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func query(t *testing.T, e *echo.Echo, upc string) gqlResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]interface{}{
		"query":     productQuery,
		"variables": map[string]string{"upc": upc},
	})
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var out gqlResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	db := testdb.New(t)
	broken := testdb.MilkProduct()
	broken.UPC = "99999999999999"
	broken.Supplier = nil
	testdb.Seed(t, db, testdb.ScenarioProduct(), broken)

	e := echo.New()
	RegisterGraphQLRoutes(e, &api.Deps{DB: db, Lookup: productService.NewLookupService(db, nil)})
	return e
}

func TestGraphQL_ProductByAlternate(t *testing.T) {
	out := query(t, newTestServer(t), "00005114137289")
	if len(out.Errors) > 0 {
		t.Fatalf("errors = %+v", out.Errors)
	}
	p := out.Data.Product
	if p == nil {
		t.Fatal("product is null")
	}
	if p.UPC != "00007127930100" || p.Price != "13.76" || p.ItemNumber != 30257880 || p.InventoryLevel != 15 {
		t.Errorf("product = %+v", p)
	}
	if p.InventoryUpdatedAt != "2024-11-04T20:00:16Z" {
		t.Errorf("inventory_updated_at = %s", p.InventoryUpdatedAt)
	}
	if len(p.Variants) != 2 {
		t.Fatalf("len(variants) = %d, want 2", len(p.Variants))
	}
	if p.Variants[0].Type != "variant" || p.Variants[0].CasePack != nil {
		t.Errorf("variants[0] = %+v", p.Variants[0])
	}
	if p.Variants[1].Type != "case" || p.Variants[1].CasePack == nil || *p.Variants[1].CasePack != 6 {
		t.Errorf("variants[1] = %+v", p.Variants[1])
	}
}

func TestGraphQL_NotFoundIsNull(t *testing.T) {
	out := query(t, newTestServer(t), "00000000000000")
	if len(out.Errors) > 0 {
		t.Errorf("errors = %+v", out.Errors)
	}
	if out.Data.Product != nil {
		t.Errorf("product = %+v, want null", out.Data.Product)
	}
}

func TestGraphQL_Errors(t *testing.T) {
	e := newTestServer(t)
	tests := map[string]string{
		"123":            "upc must be exactly 14 digits",
		"99999999999999": "internal server error",
	}
	for upc, want := range tests {
		out := query(t, e, upc)
		if len(out.Errors) != 1 || out.Errors[0].Message != want {
			t.Errorf("upc %s errors = %+v, want %q", upc, out.Errors, want)
		}
		if out.Data.Product != nil {
			t.Errorf("upc %s product = %+v, want null", upc, out.Data.Product)
		}
	}
}

func TestGraphQL_GetNotRouted(t *testing.T) {
	e := newTestServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/graphql?query=%7Bproduct(upc:%2200007127930100%22)%7Bupc%7D%7D", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /graphql status = %d, want 405", rec.Code)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/playground", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "endpoint: '/graphql'") {
		t.Errorf("GET /playground status = %d", rec.Code)
	}
}
