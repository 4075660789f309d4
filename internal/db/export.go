// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/toeirei/stockmaster/internal/model"
)

// ExportData reads every entity through d for a backup. Password hashes are
// cleared from the exported users.
func ExportData(ctx context.Context, d *DAOs) (*model.BackupData, error) {
	out := &model.BackupData{
		SchemaVersion: model.BackupSchemaVersion,
		CreatedAt:     time.Now().UTC(),
	}
	var err error
	if out.Suppliers, err = d.Suppliers.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export suppliers: %w", err)
	}
	if out.Products, err = d.Products.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	if out.Sales, err = d.Sales.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export sales: %w", err)
	}
	if out.StockMovements, err = d.Movements.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export stock movements: %w", err)
	}
	if out.Alerts, err = d.Alerts.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export alerts: %w", err)
	}
	if out.Users, err = d.Users.GetAll(ctx); err != nil {
		return nil, fmt.Errorf("export users: %w", err)
	}
	for i := range out.Users {
		out.Users[i].PasswordHash = ""
	}
	return out, nil
}
