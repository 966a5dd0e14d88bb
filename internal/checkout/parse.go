// Package checkout narrows untyped checkout responses. Unlike the rest of
// the engine this fails loudly: a storefront must never redirect a user to
// an incomplete payment session, so a response missing any mandatory field
// is rejected outright instead of being default-filled.
package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vantis/storefront-state/internal/model"
)

// ErrInvalidPayload is returned when a checkout response is not a fully
// populated result.
var ErrInvalidPayload = errors.New("invalid checkout payload")

// Parse validates a raw checkout response and returns the narrowed result.
// order_id, checkout_url and status must all be non-blank strings.
func Parse(raw map[string]any) (*model.CheckoutResult, error) {
	if raw == nil {
		return nil, ErrInvalidPayload
	}

	orderID, err := stringField(raw, "order_id")
	if err != nil {
		return nil, err
	}
	checkoutURL, err := stringField(raw, "checkout_url")
	if err != nil {
		return nil, err
	}
	status, err := stringField(raw, "status")
	if err != nil {
		return nil, err
	}

	return &model.CheckoutResult{
		OrderID:     orderID,
		CheckoutURL: checkoutURL,
		Status:      status,
	}, nil
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidPayload, key)
	}
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: missing %s", ErrInvalidPayload, key)
	}
	return s, nil
}
