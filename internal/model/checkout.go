package model

// CheckoutResult is the narrowed checkout response. All three fields are
// mandatory; a partially populated result is never constructed.
type CheckoutResult struct {
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}
