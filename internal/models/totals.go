package models

import (
	"errors"
	"fmt"
	"math"
)

// MaxItemQuantity caps the quantity of a single cart item.
const MaxItemQuantity = 10000

var ErrTotalsOverflow = errors.New("cart totals overflow")

// CalculateTotals sums price × quantity over items. No tax or discount is
// applied, so total always equals subtotal. Every item must carry its product.
func CalculateTotals(items []CartItem) (subtotal, total int64, err error) {
	for _, it := range items {
		if it.Product == nil {
			return 0, 0, fmt.Errorf("cart item %s has no product loaded", it.ID)
		}
		price, qty := it.Product.Price, int64(it.Quantity)
		if price < 0 || qty < 0 {
			return 0, 0, fmt.Errorf("cart item %s: negative price or quantity", it.ID)
		}
		if qty != 0 && price > math.MaxInt64/qty {
			return 0, 0, fmt.Errorf("cart item %s: %w", it.ID, ErrTotalsOverflow)
		}
		line := price * qty
		if subtotal > math.MaxInt64-line {
			return 0, 0, ErrTotalsOverflow
		}
		subtotal += line
	}
	return subtotal, subtotal, nil
}
