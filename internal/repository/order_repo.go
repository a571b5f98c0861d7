package repository

import (
	"context"

	"food_delivery/internal/model"
)

// OrderRepository defines operations on the persisted orders collection.
//
// The collection is a single blob: Append and Save rewrite all of it. Two
// mutations that both read before either writes race, and the later write
// silently drops the earlier one. There is no locking across the read and the
// write; callers issue mutations one at a time.
type OrderRepository interface {
	List(ctx context.Context) ([]model.Order, error)
	Append(ctx context.Context, order model.Order) error
	Save(ctx context.Context, orders []model.Order) error
}

type orderRepository struct {
	store RecordStore
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(store RecordStore) OrderRepository {
	return &orderRepository{store: store}
}

// List returns all orders in insertion order. A corrupt collection reads as empty.
func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	orders, _, err := loadJSON[[]model.Order](ctx, r.store, KeyOrders)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Append reads the collection, adds order at the end and writes it back.
func (r *orderRepository) Append(ctx context.Context, order model.Order) error {
	orders, err := r.List(ctx)
	if err != nil {
		return err
	}
	return r.Save(ctx, append(orders, order))
}

// Save overwrites the whole collection.
func (r *orderRepository) Save(ctx context.Context, orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}
	return saveJSON(ctx, r.store, KeyOrders, orders)
}
