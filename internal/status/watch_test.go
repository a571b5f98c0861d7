package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food_delivery/internal/clock"
	"food_delivery/internal/model"
)

func startWatch(t *testing.T, c *clock.Manual, orders []model.Order, sel model.Selector) (*Watch, chan []model.Order) {
	t.Helper()
	views := make(chan []model.Order, 16)
	w, err := NewWatch(c, time.Second, orders, sel, func(v []model.Order) { views <- v })
	require.NoError(t, err)
	t.Cleanup(w.Stop)
	return w, views
}

func nextView(t *testing.T, views <-chan []model.Order) []model.Order {
	t.Helper()
	select {
	case v := <-views:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a view")
		return nil
	}
}

func TestWatch_PublishesInitialViewAndTicks(t *testing.T) {
	c := clock.NewManual(t0)
	order := model.Order{ID: "o1", CreatedAt: t0}
	_, views := startWatch(t, c, []model.Order{order}, model.SelectAll)

	first := nextView(t, views)
	require.Len(t, first, 1)
	assert.Equal(t, model.OrderStatusPreparing, first[0].Status)
	assert.Equal(t, 10, first[0].MinutesRemaining)

	c.Advance(9 * time.Minute)
	c.Tick()
	second := nextView(t, views)
	assert.Equal(t, model.OrderStatusPreparing, second[0].Status)
	assert.Equal(t, 1, second[0].MinutesRemaining)

	c.Advance(time.Minute)
	c.Tick()
	third := nextView(t, views)
	assert.Equal(t, model.OrderStatusDelivered, third[0].Status)
	assert.Equal(t, 0, third[0].MinutesRemaining)
}

func TestWatch_SelectorAppliesToDerivedStatus(t *testing.T) {
	c := clock.NewManual(t0)
	order := model.Order{ID: "o1", CreatedAt: t0}
	_, views := startWatch(t, c, []model.Order{order}, model.SelectPreparing)

	assert.Len(t, nextView(t, views), 1)

	c.Advance(Window)
	c.Tick()
	assert.Empty(t, nextView(t, views))
}

func TestWatch_ReplaceAndSetSelector(t *testing.T) {
	c := clock.NewManual(t0)
	w, views := startWatch(t, c, nil, model.SelectAll)
	assert.Empty(t, nextView(t, views))

	w.Replace([]model.Order{
		{ID: "fresh", CreatedAt: t0},
		{ID: "stale", CreatedAt: t0.Add(-time.Hour)},
	})
	c.Tick()
	assert.Equal(t, []string{"fresh", "stale"}, ids(nextView(t, views)))

	require.NoError(t, w.SetSelector(model.SelectDelivered))
	c.Tick()
	assert.Equal(t, []string{"stale"}, ids(nextView(t, views)))
}

func TestWatch_RejectsUnknownSelector(t *testing.T) {
	c := clock.NewManual(t0)

	_, err := NewWatch(c, time.Second, nil, model.Selector("cancelled"), func([]model.Order) {})
	assert.Error(t, err)
	assert.Equal(t, 0, c.ActiveTickers(), "a rejected watch starts nothing")

	orders := []model.Order{{ID: "o1", CreatedAt: t0}}
	w, views := startWatch(t, c, orders, model.SelectPreparing)
	assert.Len(t, nextView(t, views), 1)

	assert.Error(t, w.SetSelector(model.Selector("Delivred")))
	c.Tick()
	assert.Equal(t, []string{"o1"}, ids(nextView(t, views)), "the previous selector stays in effect")
}

func TestWatch_SelectorIsCaseInsensitive(t *testing.T) {
	c := clock.NewManual(t0)
	w, views := startWatch(t, c, []model.Order{{ID: "o1", CreatedAt: t0.Add(-time.Hour)}}, model.Selector(""))
	assert.Len(t, nextView(t, views), 1)

	require.NoError(t, w.SetSelector(model.Selector("preparing")))
	c.Tick()
	assert.Empty(t, nextView(t, views))
}

func TestWatch_StopReleasesTickerAndSilencesCallback(t *testing.T) {
	c := clock.NewManual(t0)
	w, views := startWatch(t, c, []model.Order{{ID: "o1", CreatedAt: t0}}, model.SelectAll)
	nextView(t, views)
	require.Equal(t, 1, c.ActiveTickers())

	w.Stop()
	w.Stop()

	assert.Equal(t, 0, c.ActiveTickers())
	c.Tick()
	select {
	case v := <-views:
		t.Fatalf("unexpected view after stop: %v", v)
	case <-time.After(50 * time.Millisecond):
	}
	select {
	case <-w.Done():
	default:
		t.Fatal("Done should be closed after Stop")
	}
}

func TestWatch_DoesNotMutateCallerSlice(t *testing.T) {
	c := clock.NewManual(t0)
	orders := []model.Order{{ID: "o1", Status: model.OrderStatusDelivered, CreatedAt: t0}}
	_, views := startWatch(t, c, orders, model.SelectAll)

	nextView(t, views)
	assert.Equal(t, model.OrderStatusDelivered, orders[0].Status)
}
