// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/stockmaster/internal/model"
)

func TestSupplierDAO_CreateGetExists(t *testing.T) {
	ctx := context.Background()
	dao := NewSupplierDAO(newTestConn(t))

	s := &model.Supplier{Name: "Acme", Phone: "555-1111"}
	ok, err := dao.Create(ctx, s)
	require.NoError(t, err)
	require.True(t, ok)
	require.Positive(t, s.ID)

	got, err := dao.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, *s, *got)

	exists, err := dao.ExistsByName(ctx, "Acme")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = dao.ExistsByName(ctx, "Nope")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSupplierDAO_RoundTripAllFields(t *testing.T) {
	ctx := context.Background()
	dao := NewSupplierDAO(newTestConn(t))

	s := &model.Supplier{
		Name:          "Globex",
		ContactPerson: "Hank Scorpio",
		Phone:         "555-0100",
		Email:         "hank@globex.example",
		Address:       "1 Cypress Creek",
	}
	ok, err := dao.Create(ctx, s)
	require.NoError(t, err)
	require.True(t, ok)

	got, err := dao.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSupplierDAO_GetByIDNotFound(t *testing.T) {
	dao := NewSupplierDAO(newTestConn(t))
	got, err := dao.GetByID(context.Background(), 4242)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSupplierDAO_GetAllOrderedByName(t *testing.T) {
	ctx := context.Background()
	dao := NewSupplierDAO(newTestConn(t))

	for _, name := range []string{"Zeta", "alpha co", "Mango", "Beta", "Acme"} {
		ok, err := dao.Create(ctx, &model.Supplier{Name: name})
		require.NoError(t, err)
		require.True(t, ok)
	}

	all, err := dao.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	names := make([]string, 0, len(all))
	for _, s := range all {
		names = append(names, s.Name)
	}
	assert.True(t, sort.StringsAreSorted(names), "names not in non-decreasing order: %v", names)
}

func TestSupplierDAO_GetAllEmpty(t *testing.T) {
	all, err := NewSupplierDAO(newTestConn(t)).GetAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestSupplierDAO_Update(t *testing.T) {
	ctx := context.Background()
	dao := NewSupplierDAO(newTestConn(t))

	s := &model.Supplier{Name: "Initech", Phone: "555-2000"}
	_, err := dao.Create(ctx, s)
	require.NoError(t, err)

	s.Phone = ""
	s.Email = "tps@initech.example"
	ok, err := dao.Update(ctx, s)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := dao.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestSupplierDAO_UpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	dao := NewSupplierDAO(newTestConn(t))

	existing := &model.Supplier{Name: "Keep Me"}
	_, err := dao.Create(ctx, existing)
	require.NoError(t, err)

	ok, err := dao.Update(ctx, &model.Supplier{ID: existing.ID + 100, Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := dao.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, *existing, all[0])
}

func TestSupplierDAO_DuplicateName(t *testing.T) {
	ctx := context.Background()
	dao := NewSupplierDAO(newTestConn(t))

	_, err := dao.Create(ctx, &model.Supplier{Name: "Acme"})
	require.NoError(t, err)

	dup := &model.Supplier{Name: "Acme"}
	ok, err := dao.Create(ctx, dup)
	assert.False(t, ok)
	assert.Zero(t, dup.ID)

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "supplier.create", se.Op)
	assert.True(t, errors.Is(err, ErrDuplicate))
}

func TestSupplierDAO_NilRecord(t *testing.T) {
	dao := NewSupplierDAO(newTestConn(t))
	_, err := dao.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilRecord)
	_, err = dao.Update(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNilRecord)
}

func TestSupplierDAO_LiveFailureIsStorageError(t *testing.T) {
	ctx := context.Background()
	bdb := newTestConn(t)
	dao := NewSupplierDAO(bdb)

	require.NoError(t, bdb.DB.Close())

	_, err := dao.GetAll(ctx)
	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "supplier.get_all", se.Op)

	_, err = dao.GetByID(ctx, 1)
	require.ErrorAs(t, err, &se)

	_, err = dao.Create(ctx, &model.Supplier{Name: "x"})
	require.ErrorAs(t, err, &se)

	_, err = dao.ExistsByName(ctx, "x")
	require.ErrorAs(t, err, &se)
}
