package product

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	productEntity "products.GO/model/entity/product"
)

// LoadOptions configures a load of the ETL output files.
type LoadOptions struct {
	BatchSize int
	// Replace empties both tables before loading, for full snapshots.
	Replace bool
}

// LoadResult holds counters from a load run.
type LoadResult struct {
	ProductRows   int
	AlternateRows int
	Products      int
	Alternates    int
	Skipped       int
	Warnings      []string
	Duration      time.Duration
}

// productRow is one line of products.csv.
type productRow struct {
	ProductID          uint                `mapstructure:"product_id"`
	UPC                string              `mapstructure:"upc"`
	Name               *string             `mapstructure:"name"`
	ItemNumber         *int64              `mapstructure:"item_number"`
	Price              decimal.NullDecimal `mapstructure:"price"`
	Supplier           *string             `mapstructure:"supplier"`
	InventoryLevel     *int64              `mapstructure:"inventory_level"`
	InventoryUpdatedAt *time.Time          `mapstructure:"inventory_updated_at"`
}

// alternateRow is one line of product_alternates.csv.
type alternateRow struct {
	ProductAlternateID uint     `mapstructure:"product_alternate_id"`
	ProductID          uint     `mapstructure:"product_id"`
	UPC                string   `mapstructure:"upc"`
	AlternateType      string   `mapstructure:"alternate_type"`
	CasePack           *float64 `mapstructure:"case_pack"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02",
}

var (
	timeType        = reflect.TypeOf(time.Time{})
	nullDecimalType = reflect.TypeOf(decimal.NullDecimal{})
)

func stringToTimeHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != timeType {
			return data, nil
		}
		s := data.(string)
		for _, layout := range timeLayouts {
			if ts, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return ts, nil
			}
		}
		return nil, fmt.Errorf("invalid timestamp %q", s)
	}
}

func stringToDecimalHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != nullDecimalType {
			return data, nil
		}
		d, err := decimal.NewFromString(data.(string))
		if err != nil {
			return nil, fmt.Errorf("invalid decimal %q", data)
		}
		return decimal.NewNullDecimal(d), nil
	}
}

// floatStringToIntHook accepts "42.0" for integer columns, as pandas writes
// nullable integer columns as floats.
func floatStringToIntHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		switch t.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		default:
			return data, nil
		}
		s := data.(string)
		if !strings.Contains(s, ".") {
			return data, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v != math.Trunc(v) {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return strconv.FormatFloat(v, 'f', 0, 64), nil
	}
}

var rowDecodeHook = mapstructure.ComposeDecodeHookFunc(
	stringToTimeHook(),
	stringToDecimalHook(),
	floatStringToIntHook(),
)

func decodeRow(m map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rowDecodeHook,
		Result:           out,
		TagName:          "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

// readCSV returns every data row as a column->value map. Empty cells are
// left out so optional fields decode as nil.
func readCSV(r io.Reader) ([]map[string]interface{}, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	var rows []map[string]interface{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		m := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			if v := strings.TrimSpace(rec[i]); v != "" {
				m[col] = v
			}
		}
		rows = append(rows, m)
	}
	return rows, nil
}

// normalizeUPC left-pads numeric codes that lost their leading zeros.
func normalizeUPC(s string) string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".0")
	if len(s) > 0 && len(s) < UPCLength {
		if _, err := strconv.ParseUint(s, 10, 64); err == nil {
			s = strings.Repeat("0", UPCLength-len(s)) + s
		}
	}
	return s
}

type loadState struct {
	res *LoadResult
	// upc -> product_id, from the store and then from accepted rows
	productUPCs map[string]uint
	productIDs  map[uint]bool
	// upc -> product_alternate_id
	alternateUPCs map[string]uint
}

func (s *loadState) skip(format string, args ...interface{}) {
	s.res.Skipped++
	s.res.Warnings = append(s.res.Warnings, fmt.Sprintf(format, args...))
}

// LoadCSV loads products.csv and product_alternates.csv into the store in one
// transaction. Rows that would break the catalog invariants are skipped with
// a warning. alternates may be nil.
func LoadCSV(ctx context.Context, db *gorm.DB, products, alternates io.Reader, opts LoadOptions) (*LoadResult, error) {
	start := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}
	res := &LoadResult{}

	productMaps, err := readCSV(products)
	if err != nil {
		return nil, fmt.Errorf("products csv: %w", err)
	}
	var alternateMaps []map[string]interface{}
	if alternates != nil {
		if alternateMaps, err = readCSV(alternates); err != nil {
			return nil, fmt.Errorf("alternates csv: %w", err)
		}
	}
	res.ProductRows = len(productMaps)
	res.AlternateRows = len(alternateMaps)

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if opts.Replace {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&productEntity.Alternate{}).Error; err != nil {
				return fmt.Errorf("clear alternates: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&productEntity.Product{}).Error; err != nil {
				return fmt.Errorf("clear products: %w", err)
			}
		}

		st, err := newLoadState(tx, res)
		if err != nil {
			return err
		}

		prods := st.collectProducts(productMaps)
		if len(prods) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Omit("Alternates").
				CreateInBatches(&prods, opts.BatchSize).Error; err != nil {
				return fmt.Errorf("upsert products: %w", err)
			}
		}
		res.Products = len(prods)

		alts := st.collectAlternates(alternateMaps)
		if len(alts) > 0 {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				CreateInBatches(&alts, opts.BatchSize).Error; err != nil {
				return fmt.Errorf("upsert alternates: %w", err)
			}
		}
		res.Alternates = len(alts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

func newLoadState(tx *gorm.DB, res *LoadResult) (*loadState, error) {
	st := &loadState{
		res:           res,
		productUPCs:   make(map[string]uint),
		productIDs:    make(map[uint]bool),
		alternateUPCs: make(map[string]uint),
	}

	var existingProducts []productEntity.Product
	if err := tx.Select("product_id", "upc").Find(&existingProducts).Error; err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	for _, p := range existingProducts {
		st.productUPCs[p.UPC] = p.ProductID
		st.productIDs[p.ProductID] = true
	}

	var existingAlternates []productEntity.Alternate
	if err := tx.Select("product_alternate_id", "upc").Find(&existingAlternates).Error; err != nil {
		return nil, fmt.Errorf("read alternates: %w", err)
	}
	for _, a := range existingAlternates {
		st.alternateUPCs[a.UPC] = a.ProductAlternateID
	}
	return st, nil
}

func (st *loadState) collectProducts(rows []map[string]interface{}) []productEntity.Product {
	out := make([]productEntity.Product, 0, len(rows))
	for i, m := range rows {
		line := i + 2
		if v, ok := m["upc"].(string); ok {
			m["upc"] = normalizeUPC(v)
		}
		var row productRow
		if err := decodeRow(m, &row); err != nil {
			st.skip("products.csv line %d: %v", line, err)
			continue
		}
		if row.ProductID == 0 {
			st.skip("products.csv line %d: missing product_id", line)
			continue
		}
		if !ValidUPC(row.UPC) {
			st.skip("products.csv line %d: invalid upc %q", line, row.UPC)
			continue
		}
		if owner, ok := st.productUPCs[row.UPC]; ok && owner != row.ProductID {
			st.skip("products.csv line %d: upc %s already belongs to product %d", line, row.UPC, owner)
			continue
		}
		if _, ok := st.alternateUPCs[row.UPC]; ok {
			st.skip("products.csv line %d: upc %s is already an alternate upc", line, row.UPC)
			continue
		}
		if row.Price.Valid && !row.Price.Decimal.Equal(row.Price.Decimal.Round(2)) {
			st.skip("products.csv line %d: price %s has more than 2 fraction digits", line, row.Price.Decimal)
			continue
		}
		st.productUPCs[row.UPC] = row.ProductID
		st.productIDs[row.ProductID] = true
		out = append(out, productEntity.Product{
			ProductID:          row.ProductID,
			UPC:                row.UPC,
			Name:               row.Name,
			ItemNumber:         row.ItemNumber,
			Price:              row.Price,
			Supplier:           row.Supplier,
			InventoryLevel:     row.InventoryLevel,
			InventoryUpdatedAt: row.InventoryUpdatedAt,
		})
	}
	return out
}

func (st *loadState) collectAlternates(rows []map[string]interface{}) []productEntity.Alternate {
	out := make([]productEntity.Alternate, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for i, m := range rows {
		line := i + 2
		if v, ok := m["upc"].(string); ok {
			m["upc"] = normalizeUPC(v)
		}
		var row alternateRow
		if err := decodeRow(m, &row); err != nil {
			st.skip("product_alternates.csv line %d: %v", line, err)
			continue
		}
		if !ValidUPC(row.UPC) {
			st.skip("product_alternates.csv line %d: invalid upc %q", line, row.UPC)
			continue
		}
		if !st.productIDs[row.ProductID] {
			st.skip("product_alternates.csv line %d: unknown product_id %d", line, row.ProductID)
			continue
		}
		if seen[row.UPC] {
			st.skip("product_alternates.csv line %d: duplicate upc %s", line, row.UPC)
			continue
		}
		if owner, ok := st.productUPCs[row.UPC]; ok {
			st.skip("product_alternates.csv line %d: upc %s is the primary upc of product %d", line, row.UPC, owner)
			continue
		}
		altType := productEntity.AlternateType(strings.ToLower(row.AlternateType))
		switch altType {
		case productEntity.AlternateCase:
			if row.CasePack == nil || *row.CasePack <= 0 {
				st.skip("product_alternates.csv line %d: case %s without case_pack", line, row.UPC)
				continue
			}
		case productEntity.AlternateVariant:
			if row.CasePack != nil {
				st.skip("product_alternates.csv line %d: variant %s with case_pack", line, row.UPC)
				continue
			}
		default:
			st.skip("product_alternates.csv line %d: invalid alternate_type %q", line, row.AlternateType)
			continue
		}

		id := row.ProductAlternateID
		if existing, ok := st.alternateUPCs[row.UPC]; ok {
			if id != 0 && id != existing {
				st.skip("product_alternates.csv line %d: upc %s already belongs to alternate %d", line, row.UPC, existing)
				continue
			}
			id = existing
		}
		seen[row.UPC] = true
		out = append(out, productEntity.Alternate{
			ProductAlternateID: id,
			ProductID:          row.ProductID,
			UPC:                row.UPC,
			AlternateType:      altType,
			CasePack:           row.CasePack,
		})
	}
	return out
}
