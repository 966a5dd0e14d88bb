package model

// Cart is the last known cart snapshot. It is replaced wholesale on every
// successful server response and optimistically patched between requests.
type Cart struct {
	ID     string     `json:"id"`
	Items  []CartItem `json:"items"`
	Totals CartTotals `json:"totals"`
}

type CartItem struct {
	ID               string `json:"id"`
	ProductVariantID string `json:"product_variant_id"`
	Title            string `json:"title,omitempty"`
	UnitPriceCents   int64  `json:"unit_price_cents"`
	Currency         string `json:"currency"`
	Quantity         int    `json:"quantity"`
}

// CartTotals is always derived from Items, never mutated on its own.
type CartTotals struct {
	ItemCount     int    `json:"item_count"`
	SubtotalCents int64  `json:"subtotal_cents"`
	Currency      string `json:"currency"`
}

// Item returns the item with the given ID, if present.
func (c Cart) Item(itemID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return CartItem{}, false
}
