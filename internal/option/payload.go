// Package option turns raw admin form input for a catalog custom option into
// a validated mutation payload. This is the parse-and-normalize boundary:
// untyped form fields and the embedded JSON values array come in, a strictly
// shaped payload with documented default substitutions comes out.
package option

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/vantis/storefront-state/internal/model"
)

// Type groups. Every concrete option type maps to exactly one group, which
// drives the form fields and pricing rules that apply.
const (
	GroupText   = "text"
	GroupFile   = "file"
	GroupSelect = "select"
	GroupDate   = "date"
)

const (
	PriceTypeFixed   = "fixed"
	PriceTypePercent = "percent"
)

// DisplayModeColorButtons renders select values as color swatches; every
// value must then carry a concrete swatch hex.
const DisplayModeColorButtons = "color_buttons"

// DefaultSwatchHex is substituted for missing or blank swatch colors under
// DisplayModeColorButtons.
const DefaultSwatchHex = "#0072F5"

// TypeGroup maps a concrete option type to its group. Total: anything
// unrecognized falls through to date.
func TypeGroup(optionType string) string {
	switch optionType {
	case "field", "area":
		return GroupText
	case "file":
		return GroupFile
	case "dropdown", "radio", "checkbox", "multiple":
		return GroupSelect
	default:
		return GroupDate
	}
}

// FormInput is the raw admin form state for one custom option. ValuesJSON is
// the JSON-encoded values array as the form edits it.
type FormInput struct {
	Code        string  `json:"code"`
	Title       string  `json:"title"`
	Type        string  `json:"type"`
	Required    bool    `json:"required"`
	IsActive    bool    `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
	DisplayMode string  `json:"display_mode"`
	PriceType   string  `json:"price_type"`
	PriceValue  float64 `json:"price_value"`
	ValuesJSON  string  `json:"values_json"`
}

// BuildPayload normalizes form input into a mutation payload. Malformed
// values JSON yields an empty values list, not a failure. Select-group
// options carry no option-level pricing; other groups normalize the price
// type to fixed unless it is explicitly percent.
func BuildPayload(in FormInput) model.OptionPayload {
	group := TypeGroup(in.Type)
	values := parseValues(in.ValuesJSON)

	var priceType *string
	var priceValue *float64
	if group != GroupSelect {
		pt := PriceTypeFixed
		if in.PriceType == PriceTypePercent {
			pt = PriceTypePercent
		}
		pv := in.PriceValue
		priceType = &pt
		priceValue = &pv
	}

	for i := range values {
		if values[i].PriceType != PriceTypePercent {
			values[i].PriceType = PriceTypeFixed
		}
		if in.DisplayMode == DisplayModeColorButtons && strings.TrimSpace(values[i].SwatchHex) == "" {
			values[i].SwatchHex = DefaultSwatchHex
		}
	}

	return model.OptionPayload{
		Code:        in.Code,
		Title:       in.Title,
		Type:        in.Type,
		TypeGroup:   group,
		Required:    in.Required,
		IsActive:    in.IsActive,
		SortOrder:   in.SortOrder,
		DisplayMode: in.DisplayMode,
		PriceType:   priceType,
		PriceValue:  priceValue,
		Values:      values,
	}
}

// ValidateSelectValues is the pre-submit gate for select-type options: at
// least one value, every title non-blank, every price finite and
// non-negative. The server remains authoritative.
func ValidateSelectValues(values []model.OptionValue) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if strings.TrimSpace(v.Title) == "" {
			return false
		}
		if math.IsNaN(v.PriceValue) || math.IsInf(v.PriceValue, 0) || v.PriceValue < 0 {
			return false
		}
	}
	return true
}

func parseValues(raw string) []model.OptionValue {
	if strings.TrimSpace(raw) == "" {
		return []model.OptionValue{}
	}
	var values []model.OptionValue
	if err := json.Unmarshal([]byte(raw), &values); err != nil || values == nil {
		return []model.OptionValue{}
	}
	return values
}
