package model

import (
	"fmt"
	"strings"
	"time"
)

// OrderStatus is the lifecycle state of an order. It is always derived from
// CreatedAt; the persisted value is only a snapshot.
type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// Selector chooses which orders a view shows.
type Selector string

const (
	SelectAll       Selector = "All"
	SelectPreparing Selector = "Preparing"
	SelectDelivered Selector = "Delivered"
)

// ParseSelector accepts a selector name in any letter case. An empty string means All.
func ParseSelector(s string) (Selector, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return SelectAll, nil
	case "preparing":
		return SelectPreparing, nil
	case "delivered":
		return SelectDelivered, nil
	}
	return "", fmt.Errorf("unknown order selector %q", s)
}

// Order is a delivery request between a sender and a recipient.
type Order struct {
	ID               string      `json:"id,omitempty"` // empty for orders written before IDs were assigned
	SenderPhone      string      `json:"senderPhone"`
	SenderName       string      `json:"senderName"`
	SenderAddress    *Address    `json:"senderAddress,omitempty"`
	RecipientName    string      `json:"recipientName"`
	RecipientPhone   string      `json:"recipientPhone"`
	RecipientAddress *Address    `json:"recipientAddress,omitempty"`
	Status           OrderStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`

	// MinutesRemaining is filled in when status is derived and never persisted.
	MinutesRemaining int `json:"-"`
}

// VisibleTo reports whether phone is the sender or the recipient of the order.
func (o Order) VisibleTo(phone string) bool {
	return o.SenderPhone == phone || o.RecipientPhone == phone
}

// SameAs reports whether two orders denote the same stored entry. Orders with
// IDs match on ID; legacy orders without one match on their immutable fields.
func (o Order) SameAs(other Order) bool {
	if o.ID != "" || other.ID != "" {
		return o.ID == other.ID
	}
	return o.CreatedAt.Equal(other.CreatedAt) &&
		o.SenderPhone == other.SenderPhone &&
		o.SenderName == other.SenderName &&
		o.RecipientPhone == other.RecipientPhone &&
		o.RecipientName == other.RecipientName
}

// CreateOrderRequest is the input for creating an order on behalf of the logged-in user.
type CreateOrderRequest struct {
	RecipientName    string
	RecipientPhone   string
	RecipientAddress *Address
	SenderAddress    *Address
}
