package product

import (
	"context"
	"errors"
	"testing"

	productEntity "products.GO/model/entity/product"
	productRepo "products.GO/model/repository/product"
	"products.GO/model/testdb"
)

// stubStore serves products from memory and records the calls it receives.
type stubStore struct {
	products   []*productEntity.Product
	alternates []productEntity.Alternate
	err        error
	calls      []string
}

func (s *stubStore) FindProductByUPC(_ context.Context, upc string) (*productEntity.Product, error) {
	s.calls = append(s.calls, "product_by_upc")
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.UPC == upc {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindProductByID(_ context.Context, id uint) (*productEntity.Product, error) {
	s.calls = append(s.calls, "product_by_id")
	for _, p := range s.products {
		if p.ProductID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *stubStore) FindAlternateByUPC(_ context.Context, upc string) (*productEntity.Alternate, error) {
	s.calls = append(s.calls, "alternate_by_upc")
	for i := range s.alternates {
		if s.alternates[i].UPC == upc {
			return &s.alternates[i], nil
		}
	}
	return nil, nil
}

func scenarioStore() *stubStore {
	p := testdb.ScenarioProduct()
	p.ProductID = 7
	for i := range p.Alternates {
		p.Alternates[i].ProductID = 7
	}
	return &stubStore{products: []*productEntity.Product{p}, alternates: p.Alternates}
}

func TestResolver_DirectMatch(t *testing.T) {
	store := scenarioStore()
	got, err := NewResolver(store).Resolve(context.Background(), "00007127930100")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != store.products[0] {
		t.Error("Resolve returned a different product")
	}
	if len(store.calls) != 1 {
		t.Errorf("calls = %v, want only product_by_upc", store.calls)
	}
}

func TestResolver_AlternateMatch(t *testing.T) {
	store := scenarioStore()
	got, err := NewResolver(store).Resolve(context.Background(), "00007127957158")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.UPC != "00007127930100" {
		t.Errorf("UPC = %s, want owning product 00007127930100", got.UPC)
	}
	if len(got.Alternates) != 2 {
		t.Errorf("len(Alternates) = %d, want all 2", len(got.Alternates))
	}
	want := []string{"product_by_upc", "alternate_by_upc", "product_by_id"}
	if len(store.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", store.calls, want)
	}
	for i := range want {
		if store.calls[i] != want[i] {
			t.Errorf("calls[%d] = %s, want %s", i, store.calls[i], want[i])
		}
	}
}

func TestResolver_NotFound(t *testing.T) {
	_, err := NewResolver(&stubStore{}).Resolve(context.Background(), "00000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestResolver_OrphanAlternate(t *testing.T) {
	store := &stubStore{alternates: []productEntity.Alternate{
		{ProductID: 99, UPC: "22222222222222", AlternateType: productEntity.AlternateVariant},
	}}
	_, err := NewResolver(store).Resolve(context.Background(), "22222222222222")
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("err = %v, want ErrDataIntegrity", err)
	}
}

func TestResolver_MultipleRowsIsIntegrityError(t *testing.T) {
	store := &stubStore{err: productRepo.ErrMultipleRows}
	_, err := NewResolver(store).Resolve(context.Background(), "00007127930100")
	if !errors.Is(err, ErrDataIntegrity) {
		t.Errorf("err = %v, want ErrDataIntegrity", err)
	}
	if !errors.Is(err, productRepo.ErrMultipleRows) {
		t.Errorf("err = %v, want wrapped ErrMultipleRows", err)
	}
}

func TestResolver_StoreErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	_, err := NewResolver(&stubStore{err: boom}).Resolve(context.Background(), "00007127930100")
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, ErrDataIntegrity) || errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, should be neither integrity nor not found", err)
	}
}

func TestResolver_DirectMatchWinsOverAlternate(t *testing.T) {
	db := testdb.New(t)
	owner := testdb.ScenarioProduct()
	testdb.Seed(t, db, owner)
	// Second product whose primary UPC is also an alternate of the first.
	clash := testdb.MilkProduct()
	clash.UPC = "00005114137289"
	testdb.Seed(t, db, clash)

	got, err := NewResolver(productRepo.NewProductRepository(db)).Resolve(context.Background(), "00005114137289")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.ProductID != clash.ProductID {
		t.Errorf("ProductID = %d, want direct match %d", got.ProductID, clash.ProductID)
	}
}

func TestResolver_SQLiteStore(t *testing.T) {
	db := testdb.New(t)
	testdb.Seed(t, db, testdb.ScenarioProduct(), testdb.MilkProduct())
	r := NewResolver(productRepo.NewProductRepository(db))

	tests := []struct {
		upc      string
		wantUPC  string
		wantAlts int
	}{
		{"00007127930100", "00007127930100", 2},
		{"00005114137289", "00007127930100", 2},
		{"00007127957158", "00007127930100", 2},
		{"11111111111111", "11111111111111", 0},
	}
	for _, tt := range tests {
		got, err := r.Resolve(context.Background(), tt.upc)
		if err != nil {
			t.Errorf("Resolve(%s): %v", tt.upc, err)
			continue
		}
		if got.UPC != tt.wantUPC || len(got.Alternates) != tt.wantAlts {
			t.Errorf("Resolve(%s) = %s with %d alternates, want %s with %d", tt.upc, got.UPC, len(got.Alternates), tt.wantUPC, tt.wantAlts)
		}
	}

	if _, err := r.Resolve(context.Background(), "00000000000000"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Resolve(unknown) err = %v, want ErrNotFound", err)
	}
}
