// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/stockmaster/internal/model"
)

func TestExportData(t *testing.T) {
	ctx := context.Background()
	d := NewDAOs(newTestConn(t))

	_, err := d.Suppliers.Create(ctx, &model.Supplier{Name: "Acme"})
	require.NoError(t, err)
	_, err = d.Products.Create(ctx, &model.Product{SKU: "S1", Name: "Widget"})
	require.NoError(t, err)
	_, err = d.Users.Create(ctx, &model.User{Username: "root", PasswordHash: "secret", Role: "admin"})
	require.NoError(t, err)

	data, err := ExportData(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, model.BackupSchemaVersion, data.SchemaVersion)
	assert.Len(t, data.Suppliers, 1)
	assert.Len(t, data.Products, 1)
	assert.Empty(t, data.Sales)
	require.Len(t, data.Users, 1)
	assert.Empty(t, data.Users[0].PasswordHash)
}

func TestExportData_Offline(t *testing.T) {
	data, err := ExportData(context.Background(), NewDAOs(nil))
	require.NoError(t, err)
	assert.Empty(t, data.Suppliers)
	assert.Empty(t, data.Users)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	bdb := newTestConn(t)
	require.NoError(t, EnsureSchema(context.Background(), bdb))
	assert.ErrorIs(t, EnsureSchema(context.Background(), nil), ErrOffline)
}

func TestRunMaintenance(t *testing.T) {
	require.NoError(t, RunMaintenance(context.Background(), newTestConn(t)))
	assert.ErrorIs(t, RunMaintenance(context.Background(), nil), ErrOffline)
}
