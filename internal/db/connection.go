// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"sync"

	"github.com/toeirei/stockmaster/internal/config"
	"github.com/toeirei/stockmaster/internal/logging"
	"github.com/uptrace/bun"
)

// ConnectionManager owns the single shared store connection. It opens the
// connection lazily, replaces it when it stops answering, and closes it on
// shutdown. DAOs receive the handle from GetConnection and must never close
// it themselves.
//
// Create one ConnectionManager at process start and pass it (or the handle
// it returns) to whoever needs the store.
type ConnectionManager struct {
	mu  sync.Mutex
	cfg config.Database
	bun *bun.DB
}

// NewConnectionManager returns a manager for cfg. No connection is opened
// until GetConnection is called.
func NewConnectionManager(cfg config.Database) *ConnectionManager {
	return &ConnectionManager{cfg: cfg}
}

// Config returns the database settings the manager was created with.
func (m *ConnectionManager) Config() config.Database {
	return m.cfg
}

// GetConnection returns the shared connection, opening a fresh one when none
// exists or the current one no longer answers a ping. A superseded handle is
// closed before it is replaced, so at most one handle is alive at a time.
// When ctx is already done the existing handle is left alone and the context
// error is returned.
func (m *ConnectionManager) GetConnection(ctx context.Context) (*bun.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if m.bun != nil {
		err := ping(ctx, m.bun)
		if err == nil {
			return m.bun, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logging.Warnf("db: %s connection lost, reconnecting: %v", m.cfg.Type, err)
		m.closeLocked()
	}

	bdb, err := openBunDB(ctx, m.cfg)
	if err != nil {
		return nil, err
	}
	m.bun = bdb
	return bdb, nil
}

// CloseConnection closes the shared connection if there is one. Close
// failures are logged, never returned. Calling it repeatedly is harmless.
func (m *ConnectionManager) CloseConnection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *ConnectionManager) closeLocked() {
	if m.bun == nil {
		return
	}
	if err := m.bun.Close(); err != nil {
		logging.Errorf("db: error closing %s connection: %v", m.cfg.Type, err)
	} else {
		dbLogf("db: closed %s connection", m.cfg.Type)
	}
	m.bun = nil
}

// IsConnected reports whether a connection exists and answers a ping. Any
// probe failure counts as not connected.
func (m *ConnectionManager) IsConnected(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bun == nil {
		return false
	}
	return ping(ctx, m.bun) == nil
}

func ping(ctx context.Context, bdb *bun.DB) error {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return bdb.PingContext(pctx)
}
