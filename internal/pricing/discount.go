// Package pricing computes discount previews over integer minor-currency-unit
// prices. It runs on every keystroke of the admin discount form, so nothing
// here returns an error: bad input yields a zero draft or an invalid preview.
package pricing

import (
	"math"
	"strconv"
	"strings"
)

const (
	ModePercent = "percent"
	ModePrice   = "price"
)

// Draft is a discount as typed by an admin, before validation.
type Draft struct {
	Mode  string  `json:"mode"`
	Value float64 `json:"value"`
}

// ParseDraft normalizes free-form discount input. Unrecognized modes become
// percent, unparsable or non-finite values become zero.
func ParseDraft(mode, rawValue string) Draft {
	if mode != ModePercent && mode != ModePrice {
		mode = ModePercent
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(rawValue), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		value = 0
	}
	return Draft{Mode: mode, Value: value}
}

// Preview is the result of validating a discount draft against a base price.
// When Valid is false the numeric fields carry no meaning.
type Preview struct {
	Valid                bool    `json:"valid"`
	DiscountedPriceCents int64   `json:"discounted_price_cents"`
	SavingsCents         int64   `json:"savings_cents"`
	PercentOff           float64 `json:"percent_off"`
}

// PreviewDiscount computes the discounted price for a draft. A discount is
// valid only if the resulting price is at least zero and strictly below the
// base price; percent values must lie in the open interval (0, 100).
func PreviewDiscount(basePriceCents int64, mode string, value float64) Preview {
	if basePriceCents <= 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return Preview{}
	}

	var discounted int64
	if mode == ModePrice {
		discounted = int64(math.Round(value))
	} else {
		// Unknown modes are treated as percent, same as ParseDraft.
		if value <= 0 || value >= 100 {
			return Preview{}
		}
		discounted = int64(math.Round(float64(basePriceCents) * (1 - value/100)))
	}
	if discounted < 0 || discounted >= basePriceCents {
		return Preview{}
	}

	savings := basePriceCents - discounted
	percentOff := math.Round(float64(savings)/float64(basePriceCents)*100*100) / 100

	return Preview{
		Valid:                true,
		DiscountedPriceCents: discounted,
		SavingsCents:         savings,
		PercentOff:           percentOff,
	}
}
