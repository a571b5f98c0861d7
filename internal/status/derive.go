// Package status derives the live state of delivery orders from elapsed time
// and keeps in-memory views of orders up to date on a fixed tick.
package status

import (
	"time"

	"food_delivery/internal/model"
)

// Window is how long an order stays in preparation after it is created.
const Window = 10 * time.Minute

// Derived is the status of an order at one instant.
type Derived struct {
	Status           model.OrderStatus
	MinutesRemaining int
}

// DeriveStatus computes the status of an order created at createdAt as seen at now.
// A createdAt in the future counts as freshly created. Reaching the end of the
// window exactly is already Delivered.
func DeriveStatus(createdAt, now time.Time) Derived {
	elapsed := now.Sub(createdAt)
	if elapsed < 0 {
		elapsed = 0
	}
	remaining := Window - elapsed
	if remaining < 0 {
		remaining = 0
	}

	d := Derived{
		Status:           model.OrderStatusPreparing,
		MinutesRemaining: int(remaining / time.Minute),
	}
	if remaining <= 0 {
		d.Status = model.OrderStatusDelivered
	}
	return d
}

// Apply returns copies of orders with Status and MinutesRemaining derived at now.
// Whatever status was persisted is ignored.
func Apply(orders []model.Order, now time.Time) []model.Order {
	out := make([]model.Order, len(orders))
	for i, o := range orders {
		d := DeriveStatus(o.CreatedAt, now)
		o.Status = d.Status
		o.MinutesRemaining = d.MinutesRemaining
		out[i] = o
	}
	return out
}
