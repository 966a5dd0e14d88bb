// Package cart keeps an optimistic local cart view consistent while server
// confirmation is in flight. The transforms here are pure: they never mutate
// their input and always recompute totals from items in the same step.
package cart

import (
	"github.com/vantis/storefront-state/internal/model"
)

// RecalculateTotals returns a copy of the cart with totals refolded from its
// items. Items are left untouched.
func RecalculateTotals(c model.Cart) model.Cart {
	return recalc(clone(c))
}

// OptimisticUpdateQuantity replaces the quantity of the matching item and
// recalculates totals. An absent item ID is a no-op apart from the refold.
// Quantity is applied as given; clamping is the server's job.
func OptimisticUpdateQuantity(c model.Cart, itemID string, quantity int) model.Cart {
	out := clone(c)
	for i := range out.Items {
		if out.Items[i].ID == itemID {
			out.Items[i].Quantity = quantity
			break
		}
	}
	return recalc(out)
}

// OptimisticRemoveItem filters out the matching item and recalculates totals.
func OptimisticRemoveItem(c model.Cart, itemID string) model.Cart {
	out := clone(c)
	items := make([]model.CartItem, 0, len(out.Items))
	for _, it := range out.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	out.Items = items
	return recalc(out)
}

// recalc refolds Totals from Items on an already-cloned cart.
func recalc(c model.Cart) model.Cart {
	var count int
	var subtotal int64
	for _, it := range c.Items {
		count += it.Quantity
		subtotal += it.UnitPriceCents * int64(it.Quantity)
	}
	currency := c.Totals.Currency
	if currency == "" && len(c.Items) > 0 {
		currency = c.Items[0].Currency
	}
	c.Totals = model.CartTotals{
		ItemCount:     count,
		SubtotalCents: subtotal,
		Currency:      currency,
	}
	return c
}

func clone(c model.Cart) model.Cart {
	out := c
	out.Items = append([]model.CartItem(nil), c.Items...)
	return out
}
