// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"

	"github.com/toeirei/stockmaster/internal/model"
)

// RestoreStats counts what IntegrateData added and what it left alone.
type RestoreStats struct {
	Suppliers      int
	Products       int
	Sales          int
	StockMovements int
	Alerts         int
	Users          int
	Skipped        int
}

// IntegrateData performs a non-destructive restore of backup through d.
// Records whose business key (supplier name, product SKU, receipt number,
// username) already exists are skipped; identifiers are reassigned by the
// store and references are remapped. Stock movements and alerts are only
// restored for products this call created. Backups carry no password hashes,
// so restored users are stored inactive.
//
// Each record is written by its own DAO call; a failure leaves the records
// written so far in place.
func IntegrateData(ctx context.Context, d *DAOs, backup *model.BackupData) (*RestoreStats, error) {
	if d.Offline() {
		return nil, ErrOffline
	}
	if backup.SchemaVersion > model.BackupSchemaVersion {
		return nil, fmt.Errorf("backup schema version %d is newer than supported version %d",
			backup.SchemaVersion, model.BackupSchemaVersion)
	}
	stats := &RestoreStats{}

	supplierIDs, err := integrateSuppliers(ctx, d, backup.Suppliers, stats)
	if err != nil {
		return stats, err
	}
	productIDs, created, err := integrateProducts(ctx, d, backup.Products, supplierIDs, stats)
	if err != nil {
		return stats, err
	}
	userIDs, err := integrateUsers(ctx, d, backup.Users, stats)
	if err != nil {
		return stats, err
	}

	for _, s := range backup.Sales {
		pid, ok := productIDs[s.ProductID]
		if !ok {
			stats.Skipped++
			continue
		}
		exists, err := d.Sales.ExistsByReceiptNo(ctx, s.ReceiptNo)
		if err != nil {
			return stats, fmt.Errorf("restore sale %s: %w", s.ReceiptNo, err)
		}
		if exists {
			stats.Skipped++
			continue
		}
		s.ID, s.ProductID, s.UserID = 0, pid, userIDs[s.UserID]
		if _, err := d.Sales.Create(ctx, &s); err != nil {
			return stats, fmt.Errorf("restore sale %s: %w", s.ReceiptNo, err)
		}
		stats.Sales++
	}

	movementIDs := make(map[int64]int64)
	for _, m := range backup.StockMovements {
		if !created[m.ProductID] {
			stats.Skipped++
			continue
		}
		oldID := m.ID
		m.ID, m.ProductID = 0, productIDs[m.ProductID]
		if _, err := d.Movements.Create(ctx, &m); err != nil {
			return stats, fmt.Errorf("restore stock movement %d: %w", oldID, err)
		}
		movementIDs[oldID] = m.ID
		stats.StockMovements++
	}

	for _, a := range backup.Alerts {
		if !created[a.ProductID] {
			stats.Skipped++
			continue
		}
		oldID := a.ID
		a.ID, a.ProductID, a.MovementID = 0, productIDs[a.ProductID], movementIDs[a.MovementID]
		if _, err := d.Alerts.Create(ctx, &a); err != nil {
			return stats, fmt.Errorf("restore alert %d: %w", oldID, err)
		}
		stats.Alerts++
	}

	dbLogf("db: restore added %+v", *stats)
	return stats, nil
}

func integrateSuppliers(ctx context.Context, d *DAOs, in []model.Supplier, stats *RestoreStats) (map[int64]int64, error) {
	existing, err := d.Suppliers.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore suppliers: %w", err)
	}
	byName := make(map[string]int64, len(existing))
	for _, s := range existing {
		byName[s.Name] = s.ID
	}

	ids := make(map[int64]int64, len(in))
	for _, s := range in {
		if id, ok := byName[s.Name]; ok {
			ids[s.ID] = id
			stats.Skipped++
			continue
		}
		oldID := s.ID
		s.ID = 0
		if _, err := d.Suppliers.Create(ctx, &s); err != nil {
			return nil, fmt.Errorf("restore supplier %q: %w", s.Name, err)
		}
		ids[oldID] = s.ID
		byName[s.Name] = s.ID
		stats.Suppliers++
	}
	return ids, nil
}

// integrateProducts returns the old-to-new id map and the set of old ids
// that were created by this restore.
func integrateProducts(ctx context.Context, d *DAOs, in []model.Product, supplierIDs map[int64]int64, stats *RestoreStats) (map[int64]int64, map[int64]bool, error) {
	existing, err := d.Products.GetAll(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("restore products: %w", err)
	}
	bySKU := make(map[string]int64, len(existing))
	for _, p := range existing {
		bySKU[p.SKU] = p.ID
	}

	ids := make(map[int64]int64, len(in))
	created := make(map[int64]bool)
	for _, p := range in {
		if id, ok := bySKU[p.SKU]; ok {
			ids[p.ID] = id
			stats.Skipped++
			continue
		}
		oldID := p.ID
		p.ID, p.SupplierID = 0, supplierIDs[p.SupplierID]
		if _, err := d.Products.Create(ctx, &p); err != nil {
			return nil, nil, fmt.Errorf("restore product %q: %w", p.SKU, err)
		}
		ids[oldID] = p.ID
		created[oldID] = true
		bySKU[p.SKU] = p.ID
		stats.Products++
	}
	return ids, created, nil
}

func integrateUsers(ctx context.Context, d *DAOs, in []model.User, stats *RestoreStats) (map[int64]int64, error) {
	ids := make(map[int64]int64, len(in))
	for _, u := range in {
		found, err := d.Users.GetByUsername(ctx, u.Username)
		if err != nil {
			return nil, fmt.Errorf("restore user %q: %w", u.Username, err)
		}
		if found != nil {
			ids[u.ID] = found.ID
			stats.Skipped++
			continue
		}
		oldID := u.ID
		u.ID, u.PasswordHash, u.Active = 0, "", false
		if _, err := d.Users.Create(ctx, &u); err != nil {
			return nil, fmt.Errorf("restore user %q: %w", u.Username, err)
		}
		ids[oldID] = u.ID
		stats.Users++
	}
	return ids, nil
}
