package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"food_delivery/internal/clock"
	"food_delivery/internal/model"
	"food_delivery/internal/repository"
	"food_delivery/internal/status"
	"food_delivery/internal/utils"
)

// OrderService creates, lists and cancels delivery orders and keeps live views
// of them. Order status is always derived from CreatedAt at read time.
type OrderService interface {
	Create(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error)
	ListFor(ctx context.Context, phone string) ([]model.Order, error)
	ListForCurrentUser(ctx context.Context) ([]model.Order, error)
	Cancel(ctx context.Context, phone string, order model.Order) error
	CancelForCurrentUser(ctx context.Context, order model.Order) error
	OnTick(ctx context.Context, sel model.Selector, callback func([]model.Order)) (*OrderFeed, error)
}

type orderService struct {
	repo         repository.OrderRepository
	sessions     SessionService
	clock        clock.Clock
	tickInterval time.Duration
	newID        func() string
}

// NewOrderService creates a new OrderService
func NewOrderService(repo repository.OrderRepository, sessions SessionService, clk clock.Clock, tickInterval time.Duration) OrderService {
	return &orderService{
		repo:         repo,
		sessions:     sessions,
		clock:        clk,
		tickInterval: tickInterval,
		newID:        utils.NewOrderID,
	}
}

// Create places an order from the logged-in user to the given recipient.
func (s *orderService) Create(ctx context.Context, req model.CreateOrderRequest) (*model.Order, error) {
	recipientName := utils.NormalizeText(req.RecipientName)
	recipientPhone := utils.NormalizeDigits(req.RecipientPhone)
	if recipientName == "" {
		return nil, invalid("recipient name", "must not be empty")
	}
	if recipientPhone == "" {
		return nil, invalid("recipient phone", "must not be empty")
	}

	session, err := s.sessions.RequireCurrent(ctx)
	if err != nil {
		return nil, err
	}

	senderName := session.DisplayName
	if senderName == "" {
		senderName = session.Phone
	}
	senderAddress := optionalAddress(req.SenderAddress)
	if senderAddress == nil && !session.Address.IsZero() {
		home := session.Address
		senderAddress = &home
	}

	now := s.clock.Now().UTC()
	derived := status.DeriveStatus(now, now)
	order := &model.Order{
		ID:               s.newID(),
		SenderPhone:      session.Phone,
		SenderName:       senderName,
		SenderAddress:    senderAddress,
		RecipientName:    recipientName,
		RecipientPhone:   recipientPhone,
		RecipientAddress: optionalAddress(req.RecipientAddress),
		Status:           derived.Status,
		CreatedAt:        now,
		MinutesRemaining: derived.MinutesRemaining,
	}

	if err := s.repo.Append(ctx, *order); err != nil {
		return nil, fmt.Errorf("failed to create order in repo: %w", err)
	}
	return order, nil
}

// ListFor returns the orders phone sent or receives, oldest first, with
// status derived at the current time.
func (s *orderService) ListFor(ctx context.Context, phone string) ([]model.Order, error) {
	phone = utils.NormalizeDigits(phone)
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders from repo: %w", err)
	}

	visible := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if o.VisibleTo(phone) {
			visible = append(visible, o)
		}
	}
	return status.Apply(visible, s.clock.Now()), nil
}

func (s *orderService) ListForCurrentUser(ctx context.Context) ([]model.Order, error) {
	session, err := s.sessions.RequireCurrent(ctx)
	if err != nil {
		return nil, err
	}
	return s.ListFor(ctx, session.Phone)
}

// Cancel removes order from the collection on behalf of phone. Cancelling an
// order that is not stored is a no-op; an order phone is not part of is
// ErrForbidden.
func (s *orderService) Cancel(ctx context.Context, phone string, order model.Order) error {
	phone = utils.NormalizeDigits(phone)
	orders, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to find order for cancellation: %w", err)
	}

	idx := -1
	for i := range orders {
		if orders[i].SameAs(order) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	if !orders[idx].VisibleTo(phone) {
		return ErrForbidden
	}

	remaining := append(orders[:idx:idx], orders[idx+1:]...)
	if err := s.repo.Save(ctx, remaining); err != nil {
		return fmt.Errorf("failed to cancel order in repo: %w", err)
	}
	log.Printf("INFO: order %s cancelled by %s", orderRef(order), phone)
	return nil
}

func (s *orderService) CancelForCurrentUser(ctx context.Context, order model.Order) error {
	session, err := s.sessions.RequireCurrent(ctx)
	if err != nil {
		return err
	}
	return s.Cancel(ctx, session.Phone, order)
}

// OnTick starts a live view of the current user's orders. callback receives
// the filtered view immediately and then once per tick until the feed is
// stopped or ctx is done.
func (s *orderService) OnTick(ctx context.Context, sel model.Selector, callback func([]model.Order)) (*OrderFeed, error) {
	if _, err := model.ParseSelector(string(sel)); err != nil {
		return nil, invalid("selector", "must be all, preparing or delivered")
	}
	session, err := s.sessions.RequireCurrent(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := s.ListFor(ctx, session.Phone)
	if err != nil {
		return nil, err
	}

	watch, err := status.NewWatch(s.clock, s.tickInterval, orders, sel, callback)
	if err != nil {
		return nil, err
	}
	feed := &OrderFeed{
		Watch:  watch,
		phone:  session.Phone,
		orders: s,
	}
	go func() {
		select {
		case <-ctx.Done():
			feed.Stop()
		case <-feed.Done():
		}
	}()
	return feed, nil
}

// OrderFeed is a live, ticking view of one user's orders.
type OrderFeed struct {
	*status.Watch
	phone  string
	orders OrderService
}

// Reload re-reads the user's orders so the next tick reflects creations and
// cancellations made since the feed started.
func (f *OrderFeed) Reload(ctx context.Context) error {
	orders, err := f.orders.ListFor(ctx, f.phone)
	if err != nil {
		return err
	}
	f.Replace(orders)
	return nil
}

func optionalAddress(a *model.Address) *model.Address {
	if a == nil {
		return nil
	}
	n := normalizeAddress(*a)
	if n.IsZero() {
		return nil
	}
	return &n
}

func orderRef(o model.Order) string {
	if o.ID != "" {
		return o.ID
	}
	return o.CreatedAt.Format(time.RFC3339)
}
