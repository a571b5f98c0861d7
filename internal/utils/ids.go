package utils

import "github.com/google/uuid"

// NewOrderID returns a time-sortable UUIDv7 string.
func NewOrderID() string {
	return uuid.Must(uuid.NewV7()).String()
}
