package status

import (
	"sync"
	"time"

	"food_delivery/internal/clock"
	"food_delivery/internal/model"
)

// DefaultInterval is the recomputation period of a Watch.
const DefaultInterval = time.Second

// Watch keeps one view of orders live: it re-derives status and re-applies the
// selector once per tick and hands the result to its callback. It holds the
// orders in memory and never writes them back to storage.
//
// A Watch runs at most one goroutine and one ticker. Stop must be called when
// the view goes away; it is safe to call more than once.
type Watch struct {
	clock    clock.Clock
	ticker   clock.Ticker
	callback func([]model.Order)

	mu       sync.Mutex
	orders   []model.Order
	selector model.Selector

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatch starts a watch over orders. The first view is published right away,
// before any tick. A non-positive interval falls back to DefaultInterval and an
// empty selector means all orders; an unknown selector is an error.
func NewWatch(c clock.Clock, interval time.Duration, orders []model.Order, sel model.Selector, callback func([]model.Order)) (*Watch, error) {
	sel, err := model.ParseSelector(string(sel))
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	w := &Watch{
		clock:    c,
		ticker:   c.NewTicker(interval),
		callback: callback,
		orders:   append([]model.Order(nil), orders...),
		selector: sel,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watch) run() {
	defer close(w.done)
	defer w.ticker.Stop()

	w.publish(w.clock.Now())
	for {
		select {
		case <-w.stop:
			return
		case now := <-w.ticker.C():
			// A stop racing with a tick wins.
			select {
			case <-w.stop:
				return
			default:
			}
			w.publish(now)
		}
	}
}

func (w *Watch) publish(now time.Time) {
	w.mu.Lock()
	view := FilterByStatus(w.orders, w.selector, now)
	w.mu.Unlock()
	w.callback(view)
}

// Replace swaps the held orders, e.g. after an order was created or cancelled.
// The next tick publishes the new list.
func (w *Watch) Replace(orders []model.Order) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.orders = append([]model.Order(nil), orders...)
}

// SetSelector changes which orders the next tick publishes. An unknown
// selector is rejected and the current one is kept.
func (w *Watch) SetSelector(sel model.Selector) error {
	sel, err := model.ParseSelector(string(sel))
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.selector = sel
	return nil
}

// Stop cancels the tick and waits for the watch goroutine to exit.
// No callback runs after Stop returns. Stop must not be called from the callback.
func (w *Watch) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	<-w.done
}

// Done is closed once the watch has stopped.
func (w *Watch) Done() <-chan struct{} {
	return w.done
}
