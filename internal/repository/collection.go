package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// loadJSON reads key and decodes it as a T. It reports false, with the zero T,
// when the key is absent or its value is corrupt; corruption is logged and
// otherwise ignored. A value that only partly decodes is corrupt and none of
// it is returned. Only storage failures are returned as errors.
func loadJSON[T any](ctx context.Context, store RecordStore, key string) (T, bool, error) {
	var zero T
	data, err := store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return zero, false, nil
		}
		return zero, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("WARN: %v; treating as empty", &CorruptDataError{Key: key, Err: err})
		return zero, false, nil
	}
	return v, true, nil
}

func saveJSON(ctx context.Context, store RecordStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
