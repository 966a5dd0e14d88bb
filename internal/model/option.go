package model

// OptionPayload is the mutation payload for a catalog custom option,
// ready to be sent to the catalog API. PriceType and PriceValue are
// nil for select-group options: select pricing lives on the values.
type OptionPayload struct {
	Code        string        `json:"code"`
	Title       string        `json:"title"`
	Type        string        `json:"type"`
	TypeGroup   string        `json:"type_group"`
	Required    bool          `json:"required"`
	IsActive    bool          `json:"is_active"`
	SortOrder   int           `json:"sort_order"`
	DisplayMode string        `json:"display_mode"`
	PriceType   *string       `json:"price_type"`
	PriceValue  *float64      `json:"price_value"`
	Values      []OptionValue `json:"values"`
}

type OptionValue struct {
	Title      string  `json:"title"`
	SKU        string  `json:"sku,omitempty"`
	SortOrder  int     `json:"sort_order"`
	PriceType  string  `json:"price_type"`
	PriceValue float64 `json:"price_value"`
	IsDefault  bool    `json:"is_default"`
	SwatchHex  string  `json:"swatch_hex,omitempty"`
}
