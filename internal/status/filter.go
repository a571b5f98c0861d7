package status

import (
	"time"

	"food_delivery/internal/model"
)

// FilterByStatus keeps the orders whose status derived at now matches sel.
// The input is never modified; the result is always a new slice.
func FilterByStatus(orders []model.Order, sel model.Selector, now time.Time) []model.Order {
	derived := Apply(orders, now)
	if sel == model.SelectAll || sel == "" {
		return derived
	}

	out := make([]model.Order, 0, len(derived))
	for _, o := range derived {
		if string(o.Status) == string(sel) {
			out = append(out, o)
		}
	}
	return out
}
