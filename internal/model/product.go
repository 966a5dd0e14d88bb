package model

// Product is the raw admin product as returned by the catalog API.
// Derived facts (total stock, stock state, display price) are computed
// per call by the catalog package, never stored here.
type Product struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Slug      string           `json:"slug"`
	Status    string           `json:"status"`
	CreatedAt string           `json:"createdAt"` // RFC3339
	Variants  []ProductVariant `json:"variants"`
	Images    []ProductImage   `json:"images"`
}

type ProductVariant struct {
	SKU                 string `json:"sku"`
	Stock               int    `json:"stock"` // may be negative in source data
	PriceCents          int64  `json:"priceCents"`
	CompareAtPriceCents *int64 `json:"compareAtPriceCents,omitempty"`
	Currency            string `json:"currency"`
}

type ProductImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}
