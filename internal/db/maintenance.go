// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// maintenanceTimeout bounds a full maintenance run.
const maintenanceTimeout = 2 * time.Minute

// RunMaintenance performs engine-specific maintenance on the shared
// connection. For SQLite this runs PRAGMA optimize, VACUUM, a WAL checkpoint
// and an integrity check. For Postgres it runs VACUUM ANALYZE. For MySQL it
// runs OPTIMIZE TABLE for every Stockmaster table.
func RunMaintenance(ctx context.Context, bdb *bun.DB) error {
	if bdb == nil {
		return ErrOffline
	}
	ctx, cancel := context.WithTimeout(ctx, maintenanceTimeout)
	defer cancel()

	switch Dialect(bdb) {
	case DialectSQLite:
		// PRAGMA optimize may not be useful in some environments (e.g.
		// in-memory databases); treat optimize errors as non-fatal.
		if _, err := ExecRaw(ctx, bdb, "PRAGMA optimize"); err != nil {
			dbLogf("db: sqlite optimize failed (ignored): %v", err)
		}
		if _, err := ExecRaw(ctx, bdb, "VACUUM"); err != nil {
			return storageErr("maintenance.vacuum", err)
		}
		_, _ = ExecRaw(ctx, bdb, "PRAGMA wal_checkpoint(TRUNCATE)")
		var res string
		if err := QueryRawInto(ctx, bdb, &res, "PRAGMA integrity_check"); err != nil {
			return storageErr("maintenance.integrity_check", err)
		}
		if res != "ok" {
			return storageErr("maintenance.integrity_check", fmt.Errorf("sqlite integrity_check failed: %s", res))
		}
	case DialectPostgres:
		if _, err := ExecRaw(ctx, bdb, "VACUUM ANALYZE"); err != nil {
			return storageErr("maintenance.vacuum", err)
		}
	case DialectMySQL:
		var lastErr error
		for _, table := range tableNames {
			if _, err := ExecRaw(ctx, bdb, "OPTIMIZE TABLE ?", bun.Ident(table)); err != nil {
				// Non-fatal per-table: remember last error and continue.
				dbLogf("db: mysql optimize table %s failed: %v", table, err)
				lastErr = err
			}
		}
		if lastErr != nil {
			return storageErr("maintenance.optimize", lastErr)
		}
	}
	return nil
}
