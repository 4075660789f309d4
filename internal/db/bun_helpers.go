// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// execRawProvider is a small interface used to accept either *bun.DB or *bun.Tx
// since both expose NewRaw(...).* methods returning *bun.RawQuery.
type execRawProvider interface {
	NewRaw(query string, args ...interface{}) *bun.RawQuery
}

// ExecRaw executes a raw SQL statement using the provided Bun DB or transaction.
func ExecRaw(ctx context.Context, exec execRawProvider, query string, args ...interface{}) (sql.Result, error) {
	return exec.NewRaw(query, args...).Exec(ctx)
}

// QueryRawInto runs a raw query and scans the result into dest using Bun's RawQuery.Scan.
func QueryRawInto(ctx context.Context, exec execRawProvider, dest interface{}, query string, args ...interface{}) error {
	return exec.NewRaw(query, args...).Scan(ctx, dest)
}

// selectOne returns the first row of M matching where, or nil when there is none.
func selectOne[M any](ctx context.Context, bdb *bun.DB, where string, args ...any) (*M, error) {
	m := new(M)
	err := bdb.NewSelect().Model(m).Where(where, args...).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// selectMany returns all rows of M matching where (all rows when where is
// empty) in the given order.
func selectMany[M any](ctx context.Context, bdb *bun.DB, order []string, where string, args ...any) ([]M, error) {
	var ms []M
	q := bdb.NewSelect().Model(&ms)
	if where != "" {
		q = q.Where(where, args...)
	}
	if len(order) > 0 {
		q = q.Order(order...)
	}
	if err := q.Scan(ctx); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return ms, nil
}

// insertRow inserts m and lets the store fill in its primary key.
func insertRow[M any](ctx context.Context, bdb *bun.DB, m *M, pkColumn string) (bool, error) {
	res, err := bdb.NewInsert().Model(m).Returning("?", bun.Ident(pkColumn)).Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// updateRow rewrites every column of m, keyed by its primary key.
func updateRow[M any](ctx context.Context, bdb *bun.DB, m *M) (bool, error) {
	res, err := bdb.NewUpdate().Model(m).WherePK().Exec(ctx)
	if err != nil {
		return false, err
	}
	return affected(res)
}

// exists reports whether at least one row of M matches where.
func exists[M any](ctx context.Context, bdb *bun.DB, where string, args ...any) (bool, error) {
	n, err := bdb.NewSelect().Model((*M)(nil)).Where(where, args...).Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
