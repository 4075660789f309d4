// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"math/rand/v2"

	"github.com/uptrace/bun"
)

// DAO is the access contract shared by every entity.
//
// GetByID returns (nil, nil) when no row matches. Create stores rec and sets
// its identifier; it reports false when no row was written. Update rewrites
// the whole row keyed by the record's identifier and reports whether a row
// matched.
type DAO[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	GetAll(ctx context.Context) ([]T, error)
	Create(ctx context.Context, rec *T) (bool, error)
	Update(ctx context.Context, rec *T) (bool, error)
}

// bunDAO implements DAO[T] on a live connection using row model M.
type bunDAO[T any, M any] struct {
	bdb    *bun.DB
	entity string
	pk     string
	order  []string
	toRec  func(M) T
	toRow  func(*T) *M
	rowID  func(*M) int64
	setID  func(*T, int64)
}

func (d *bunDAO[T, M]) GetByID(ctx context.Context, id int64) (*T, error) {
	m, err := selectOne[M](ctx, d.bdb, "? = ?", bun.Ident(d.pk), id)
	if err != nil {
		return nil, storageErr(d.entity+".get_by_id", err)
	}
	if m == nil {
		return nil, nil
	}
	rec := d.toRec(*m)
	return &rec, nil
}

func (d *bunDAO[T, M]) GetAll(ctx context.Context) ([]T, error) {
	return d.list(ctx, d.entity+".get_all", "")
}

// list runs a filtered select in the DAO's display order.
func (d *bunDAO[T, M]) list(ctx context.Context, op, where string, args ...any) ([]T, error) {
	ms, err := selectMany[M](ctx, d.bdb, d.order, where, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	out := make([]T, 0, len(ms))
	for _, m := range ms {
		out = append(out, d.toRec(m))
	}
	return out, nil
}

// first runs a filtered single-row select.
func (d *bunDAO[T, M]) first(ctx context.Context, op, where string, args ...any) (*T, error) {
	m, err := selectOne[M](ctx, d.bdb, where, args...)
	if err != nil {
		return nil, storageErr(op, err)
	}
	if m == nil {
		return nil, nil
	}
	rec := d.toRec(*m)
	return &rec, nil
}

func (d *bunDAO[T, M]) Create(ctx context.Context, rec *T) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}
	row := d.toRow(rec)
	ok, err := insertRow(ctx, d.bdb, row, d.pk)
	if err != nil {
		return false, storageErr(d.entity+".create", err)
	}
	if ok {
		d.setID(rec, d.rowID(row))
	}
	return ok, nil
}

func (d *bunDAO[T, M]) Update(ctx context.Context, rec *T) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}
	ok, err := updateRow(ctx, d.bdb, d.toRow(rec))
	if err != nil {
		return false, storageErr(d.entity+".update", err)
	}
	return ok, nil
}

// exists runs a count-based existence check on the DAO's table.
func (d *bunDAO[T, M]) exists(ctx context.Context, op, where string, args ...any) (bool, error) {
	ok, err := exists[M](ctx, d.bdb, where, args...)
	if err != nil {
		return false, storageErr(op, err)
	}
	return ok, nil
}

// offlineDAO implements DAO[T] without a store. Reads return synthesized
// records, creates assign a random identifier and persist nothing, and
// updates are refused with ErrOffline.
type offlineDAO[T any] struct {
	synth func(id int64) T
	setID func(*T, int64)
}

// randomID returns a positive identifier for synthesized records.
func randomID() int64 {
	return rand.Int64N(1_000_000) + 1
}

func (o offlineDAO[T]) GetByID(_ context.Context, id int64) (*T, error) {
	if id <= 0 {
		id = randomID()
	}
	rec := o.synth(id)
	return &rec, nil
}

func (o offlineDAO[T]) GetAll(context.Context) ([]T, error) {
	return []T{}, nil
}

func (o offlineDAO[T]) Create(_ context.Context, rec *T) (bool, error) {
	if rec == nil {
		return false, ErrNilRecord
	}
	o.setID(rec, randomID())
	return true, nil
}

func (o offlineDAO[T]) Update(context.Context, *T) (bool, error) {
	return false, ErrOffline
}
