// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"strings"
	"testing"

	"github.com/toeirei/stockmaster/internal/config"
	"github.com/uptrace/bun"
)

// memoryDSN returns a per-test in-memory SQLite DSN. "cache=shared" keeps the
// database alive across connections opened by the same test.
func memoryDSN(t *testing.T) string {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return "file:" + name + "?mode=memory&cache=shared"
}

// newTestManager returns a ConnectionManager for a fresh in-memory database.
// The connection is closed when the test ends.
func newTestManager(t *testing.T) *ConnectionManager {
	t.Helper()
	cm := NewConnectionManager(config.Database{Type: DialectSQLite, Dsn: memoryDSN(t)})
	t.Cleanup(cm.CloseConnection)
	return cm
}

// newTestConn opens an in-memory database with the full schema.
func newTestConn(t *testing.T) *bun.DB {
	t.Helper()
	cm := newTestManager(t)
	bdb, err := cm.GetConnection(context.Background())
	if err != nil {
		t.Fatalf("GetConnection failed: %v", err)
	}
	if err := EnsureSchema(context.Background(), bdb); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	return bdb
}
