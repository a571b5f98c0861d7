package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

var errStoreDown = errors.New("store down")

// failingStore fails every operation.
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errStoreDown }
func (failingStore) Put(context.Context, string, []byte) error { return errStoreDown }
func (failingStore) Delete(context.Context, string) error { return errStoreDown }

// createTestSQLiteStore opens a SQLite store in a temp directory.
func createTestSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, path
}
