package repository

import (
	"context"
	"errors"
	"fmt"
)

// Keys of the persisted collections.
const (
	KeyUsers   = "users"
	KeySession = "user"
	KeyOrders  = "orders"
)

// ErrRecordNotFound is returned by RecordStore.Get when the key holds no value.
var ErrRecordNotFound = errors.New("record not found")

// ErrCorruptData marks a persisted value that could not be decoded.
var ErrCorruptData = errors.New("corrupt persisted data")

// CorruptDataError describes a persisted value that is not valid JSON or not
// of the expected shape. Collections recover from it locally; it is logged,
// never returned to callers.
type CorruptDataError struct {
	Key string
	Err error
}

func (e *CorruptDataError) Error() string {
	return fmt.Sprintf("corrupt %s record: %v", e.Key, e.Err)
}

func (e *CorruptDataError) Unwrap() error { return e.Err }

func (e *CorruptDataError) Is(target error) bool { return target == ErrCorruptData }

// RecordStore is a key to JSON-blob store. Values are opaque to the store.
// It offers no read-modify-write primitive: callers that read a value, change
// it and write it back can lose a concurrent writer's update.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
