// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/toeirei/stockmaster/internal/logging"
	"github.com/uptrace/bun"
)

var debugEnabled bool

// SetDebug enables or disables DB debug logging, including per-statement
// query logging. Disabled by default.
func SetDebug(enabled bool) {
	debugEnabled = enabled
}

func dbLogf(format string, v ...any) {
	if debugEnabled {
		logging.Debugf(format, v...)
	}
}

// queryLogHook logs every statement bun executes when debug is enabled.
type queryLogHook struct{}

var _ bun.QueryHook = queryLogHook{}

func (queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (queryLogHook) AfterQuery(_ context.Context, ev *bun.QueryEvent) {
	if !debugEnabled {
		return
	}
	dur := time.Since(ev.StartTime)
	if ev.Err != nil && !errors.Is(ev.Err, sql.ErrNoRows) {
		logging.Debugf("db: %s failed in %s: %v", ev.Operation(), dur, ev.Err)
		return
	}
	logging.Debugf("db: %s in %s: %s", ev.Operation(), dur, ev.Query)
}
