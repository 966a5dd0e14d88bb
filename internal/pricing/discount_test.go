package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDraft(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		rawValue string
		want     Draft
	}{
		{"percent passthrough", "percent", "25", Draft{Mode: "percent", Value: 25}},
		{"price passthrough", "price", "1500", Draft{Mode: "price", Value: 1500}},
		{"unknown mode defaults to percent", "bogo", "10", Draft{Mode: "percent", Value: 10}},
		{"empty mode defaults to percent", "", "10", Draft{Mode: "percent", Value: 10}},
		{"empty value defaults to zero", "percent", "", Draft{Mode: "percent", Value: 0}},
		{"garbage value defaults to zero", "percent", "abc", Draft{Mode: "percent", Value: 0}},
		{"NaN literal defaults to zero", "percent", "NaN", Draft{Mode: "percent", Value: 0}},
		{"infinity defaults to zero", "price", "+Inf", Draft{Mode: "price", Value: 0}},
		{"negative survives parsing", "percent", "-5", Draft{Mode: "percent", Value: -5}},
		{"whitespace trimmed", "price", "  42 ", Draft{Mode: "price", Value: 42}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDraft(tt.mode, tt.rawValue))
		})
	}
}

func TestPreviewDiscountPercent(t *testing.T) {
	p := PreviewDiscount(2000, ModePercent, 25)
	assert.True(t, p.Valid)
	assert.Equal(t, int64(1500), p.DiscountedPriceCents)
	assert.Equal(t, int64(500), p.SavingsCents)
	assert.Equal(t, 25.0, p.PercentOff)
}

func TestPreviewDiscountPercentRounding(t *testing.T) {
	// 33% of 999 = 669.33, rounds to 669; percent off derived from actual savings.
	p := PreviewDiscount(999, ModePercent, 33)
	assert.True(t, p.Valid)
	assert.Equal(t, int64(669), p.DiscountedPriceCents)
	assert.Equal(t, int64(330), p.SavingsCents)
	assert.Equal(t, 33.03, p.PercentOff)
}

func TestPreviewDiscountPrice(t *testing.T) {
	p := PreviewDiscount(2000, ModePrice, 1499.6)
	assert.True(t, p.Valid)
	assert.Equal(t, int64(1500), p.DiscountedPriceCents)
	assert.Equal(t, int64(500), p.SavingsCents)
	assert.Equal(t, 25.0, p.PercentOff)
}

func TestPreviewDiscountInvalid(t *testing.T) {
	tests := []struct {
		name  string
		base  int64
		mode  string
		value float64
	}{
		{"zero base", 0, ModePercent, 10},
		{"negative base", -100, ModePercent, 10},
		{"price target above base", 900, ModePrice, 1000},
		{"price target equals base", 900, ModePrice, 900},
		{"price target negative", 900, ModePrice, -1},
		{"percent zero", 2000, ModePercent, 0},
		{"percent hundred", 2000, ModePercent, 100},
		{"percent above hundred", 2000, ModePercent, 150},
		{"percent negative", 2000, ModePercent, -25},
		{"NaN value", 2000, ModePercent, math.NaN()},
		{"infinite value", 2000, ModePrice, math.Inf(1)},
		{"percent rounds to base", 100, ModePercent, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PreviewDiscount(tt.base, tt.mode, tt.value)
			assert.False(t, p.Valid)
			assert.Zero(t, p.DiscountedPriceCents)
			assert.Zero(t, p.SavingsCents)
			assert.Zero(t, p.PercentOff)
		})
	}
}

func TestPreviewDiscountMonotonic(t *testing.T) {
	// Every valid percent discount strictly lowers the price.
	for _, base := range []int64{1, 99, 1200, 999999} {
		for _, pct := range []float64{0.5, 10, 25, 50, 99, 99.9} {
			p := PreviewDiscount(base, ModePercent, pct)
			if !p.Valid {
				continue
			}
			assert.Less(t, p.DiscountedPriceCents, base, "base=%d pct=%v", base, pct)
			assert.Positive(t, p.SavingsCents, "base=%d pct=%v", base, pct)
		}
	}
}

func TestParseThenPreviewNeverPanics(t *testing.T) {
	modes := []string{"", "percent", "price", "weird", "PERCENT"}
	values := []string{"", "abc", "NaN", "-Inf", "-42", "0", "25", "1e308", "0.0001"}
	for _, m := range modes {
		for _, v := range values {
			d := ParseDraft(m, v)
			p := PreviewDiscount(1200, d.Mode, d.Value)
			if p.Valid {
				assert.Less(t, p.DiscountedPriceCents, int64(1200))
				assert.GreaterOrEqual(t, p.DiscountedPriceCents, int64(0))
			}
		}
	}
}
