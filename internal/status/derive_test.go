package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"food_delivery/internal/model"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestDeriveStatus_NineMinutesIn(t *testing.T) {
	d := DeriveStatus(t0, t0.Add(9*time.Minute))

	assert.Equal(t, model.OrderStatusPreparing, d.Status)
	assert.Equal(t, 1, d.MinutesRemaining)
}

func TestDeriveStatus_WindowBoundaryIsDelivered(t *testing.T) {
	d := DeriveStatus(t0, t0.Add(Window))

	assert.Equal(t, model.OrderStatusDelivered, d.Status)
	assert.Equal(t, 0, d.MinutesRemaining)
}

func TestDeriveStatus_JustBeforeBoundary(t *testing.T) {
	d := DeriveStatus(t0, t0.Add(Window-time.Millisecond))

	assert.Equal(t, model.OrderStatusPreparing, d.Status)
	assert.Equal(t, 0, d.MinutesRemaining)
}

func TestDeriveStatus_FreshOrder(t *testing.T) {
	d := DeriveStatus(t0, t0)

	assert.Equal(t, model.OrderStatusPreparing, d.Status)
	assert.Equal(t, 10, d.MinutesRemaining)
}

func TestDeriveStatus_FutureCreatedAtClampsToFullWindow(t *testing.T) {
	d := DeriveStatus(t0.Add(5*time.Minute), t0)

	assert.Equal(t, model.OrderStatusPreparing, d.Status)
	assert.Equal(t, 10, d.MinutesRemaining)
}

func TestDeriveStatus_LongAfterDelivery(t *testing.T) {
	d := DeriveStatus(t0, t0.Add(72*time.Hour))

	assert.Equal(t, model.OrderStatusDelivered, d.Status)
	assert.Equal(t, 0, d.MinutesRemaining)
}

func TestDeriveStatus_MonotonicAndNonNegative(t *testing.T) {
	prev := DeriveStatus(t0, t0).MinutesRemaining
	for step := time.Duration(0); step <= 12*time.Minute; step += 7 * time.Second {
		now := t0.Add(step)
		d := DeriveStatus(t0, now)

		assert.GreaterOrEqual(t, d.MinutesRemaining, 0)
		assert.LessOrEqual(t, d.MinutesRemaining, prev, "at %v", step)
		assert.Equal(t, step < Window, d.Status == model.OrderStatusPreparing, "at %v", step)
		prev = d.MinutesRemaining
	}
}

func TestApply_IgnoresPersistedStatus(t *testing.T) {
	orders := []model.Order{
		{ID: "a", Status: model.OrderStatusDelivered, CreatedAt: t0},
		{ID: "b", Status: model.OrderStatusPreparing, CreatedAt: t0.Add(-time.Hour)},
	}

	got := Apply(orders, t0.Add(time.Minute))

	assert.Equal(t, model.OrderStatusPreparing, got[0].Status)
	assert.Equal(t, 9, got[0].MinutesRemaining)
	assert.Equal(t, model.OrderStatusDelivered, got[1].Status)
	// input untouched
	assert.Equal(t, model.OrderStatusDelivered, orders[0].Status)
}
