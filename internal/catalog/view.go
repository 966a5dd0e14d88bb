// Package catalog derives filtered and sorted admin product views from raw
// server data. Every derivation is a pure transform: the input list and its
// elements are never mutated, and derived facts (total stock, stock state,
// display price) are computed per call rather than stored.
package catalog

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/vantis/storefront-state/internal/model"
)

// LowStockThreshold is the aggregate stock at or below which a product is
// classified low_stock. Shared by every derivation call.
const LowStockThreshold = 5

// Stock-state classifications and filter values.
const (
	StockAll = "all"
	StockIn  = "in_stock"
	StockLow = "low_stock"
	StockOut = "out_of_stock"
)

// Sort keys.
const (
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortOldest    = "oldest"
	SortNewest    = "newest"
)

// State is the admin list view state: which sort key and stock filter the
// user picked. Unknown values normalize to the defaults.
type State struct {
	Sort  string `json:"sort"`
	Stock string `json:"stock"`
}

// Normalize maps unknown sort/stock values to their defaults (newest, all).
func (s State) Normalize() State {
	switch s.Sort {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortOldest, SortNewest:
	default:
		s.Sort = SortNewest
	}
	switch s.Stock {
	case StockAll, StockIn, StockLow, StockOut:
	default:
		s.Stock = StockAll
	}
	return s
}

// TotalStock sums variant stock with each variant floored at zero; source
// data may carry negative stock.
func TotalStock(p model.Product) int {
	total := 0
	for _, v := range p.Variants {
		if v.Stock > 0 {
			total += v.Stock
		}
	}
	return total
}

// StockState classifies aggregate stock: out_of_stock at zero, low_stock at
// or below LowStockThreshold, in_stock otherwise.
func StockState(p model.Product) string {
	total := TotalStock(p)
	switch {
	case total <= 0:
		return StockOut
	case total <= LowStockThreshold:
		return StockLow
	default:
		return StockIn
	}
}

// DisplayPriceCents returns the price shown for a variant: the discounted
// compare price when present, the base price otherwise.
func DisplayPriceCents(v model.ProductVariant) int64 {
	if v.CompareAtPriceCents != nil && *v.CompareAtPriceCents > 0 {
		return *v.CompareAtPriceCents
	}
	return v.PriceCents
}

// SelectedPriceCents picks the variant whose price represents the product:
// the first in-stock variant, else the first variant. ok is false when the
// product has no variants at all.
func SelectedPriceCents(p model.Product) (cents int64, ok bool) {
	if len(p.Variants) == 0 {
		return 0, false
	}
	for _, v := range p.Variants {
		if v.Stock > 0 {
			return DisplayPriceCents(v), true
		}
	}
	return DisplayPriceCents(p.Variants[0]), true
}

// ApplyProductsState filters products by stock state, then stable-sorts by
// the requested key. The input slice is left untouched.
func ApplyProductsState(products []model.Product, state State) []model.Product {
	state = state.Normalize()

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if state.Stock != StockAll && StockState(p) != state.Stock {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, lessFor(state.Sort, out))
	return out
}

func lessFor(sortKey string, products []model.Product) func(i, j int) bool {
	switch sortKey {
	case SortNameAsc:
		return func(i, j int) bool {
			return strings.Compare(products[i].Title, products[j].Title) < 0
		}
	case SortNameDesc:
		return func(i, j int) bool {
			return strings.Compare(products[i].Title, products[j].Title) > 0
		}
	case SortPriceAsc:
		return func(i, j int) bool {
			return sortPrice(products[i]) < sortPrice(products[j])
		}
	case SortPriceDesc:
		return func(i, j int) bool {
			return sortPrice(products[i]) > sortPrice(products[j])
		}
	case SortOldest:
		return func(i, j int) bool {
			return createdAtUnix(products[i]) < createdAtUnix(products[j])
		}
	default: // SortNewest
		return func(i, j int) bool {
			return createdAtUnix(products[i]) > createdAtUnix(products[j])
		}
	}
}

// sortPrice treats a missing price as +inf so unpriced products sink to the
// end of ascending price order.
func sortPrice(p model.Product) int64 {
	cents, ok := SelectedPriceCents(p)
	if !ok {
		return math.MaxInt64
	}
	return cents
}

// createdAtUnix parses the creation timestamp; unparsable timestamps make
// the product oldest.
func createdAtUnix(p model.Product) int64 {
	ts, err := time.Parse(time.RFC3339, p.CreatedAt)
	if err != nil {
		return 0
	}
	return ts.UnixMilli()
}
