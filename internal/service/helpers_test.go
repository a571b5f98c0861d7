package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"food_delivery/internal/clock"
	"food_delivery/internal/repository"
	"food_delivery/internal/utils"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// countingStore records how many operations reach the underlying store.
type countingStore struct {
	repository.RecordStore
	calls atomic.Int64
}

func (s *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.calls.Add(1)
	return s.RecordStore.Get(ctx, key)
}

func (s *countingStore) Put(ctx context.Context, key string, value []byte) error {
	s.calls.Add(1)
	return s.RecordStore.Put(ctx, key, value)
}

func (s *countingStore) Delete(ctx context.Context, key string) error {
	s.calls.Add(1)
	return s.RecordStore.Delete(ctx, key)
}

type testEnv struct {
	store    *countingStore
	clock    *clock.Manual
	sessions SessionService
	auth     AuthService
	profiles ProfileService
	orders   OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := &countingStore{RecordStore: repository.NewMemoryStore()}
	clk := clock.NewManual(t0)
	users := repository.NewUserRepository(store)
	sessions := NewSessionService(repository.NewSessionRepository(store))
	return &testEnv{
		store:    store,
		clock:    clk,
		sessions: sessions,
		auth:     NewAuthService(users, sessions, utils.MinPINCost),
		profiles: NewProfileService(users, sessions),
		orders:   NewOrderService(repository.NewOrderRepository(store), sessions, clk, time.Second),
	}
}

// loginAs logs phone in with a fixed PIN, registering it on first use.
func (e *testEnv) loginAs(t *testing.T, phone string) {
	t.Helper()
	if _, err := e.auth.Login(context.Background(), phone, "1234"); err != nil {
		t.Fatalf("login %s: %v", phone, err)
	}
}
