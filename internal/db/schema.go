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

// EnsureSchema creates every table that does not exist yet. It never alters
// existing tables; schema evolution is managed outside this package.
func EnsureSchema(ctx context.Context, bdb *bun.DB) error {
	if bdb == nil {
		return ErrOffline
	}
	start := time.Now()
	for _, m := range allModels {
		if _, err := bdb.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return storageErr(fmt.Sprintf("schema.create %T", m), err)
		}
	}
	dbLogf("db: schema ensured for %s in %s", Dialect(bdb), time.Since(start))
	return nil
}
