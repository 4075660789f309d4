// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"

	"github.com/toeirei/stockmaster/internal/model"
	"github.com/uptrace/bun"
)

// SupplierDAO is the storage contract for suppliers. Supplier names are
// unique; callers check ExistsByName before Create.
type SupplierDAO interface {
	DAO[model.Supplier]
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// NewSupplierDAO returns a SupplierDAO on conn, or the offline
// implementation when conn is nil.
func NewSupplierDAO(conn *bun.DB) SupplierDAO {
	if conn == nil {
		return offlineSupplierDAO{offlineDAO[model.Supplier]{
			synth: demoSupplier,
			setID: func(s *model.Supplier, id int64) { s.ID = id },
		}}
	}
	return &bunSupplierDAO{&bunDAO[model.Supplier, SupplierModel]{
		bdb:    conn,
		entity: "supplier",
		pk:     "supplier_id",
		order:  []string{"name ASC", "supplier_id ASC"},
		toRec:  supplierModelToModel,
		toRow:  supplierToRow,
		rowID:  func(m *SupplierModel) int64 { return m.ID },
		setID:  func(s *model.Supplier, id int64) { s.ID = id },
	}}
}

type bunSupplierDAO struct {
	*bunDAO[model.Supplier, SupplierModel]
}

func (d *bunSupplierDAO) ExistsByName(ctx context.Context, name string) (bool, error) {
	return d.exists(ctx, "supplier.exists_by_name", "name = ?", name)
}

type offlineSupplierDAO struct {
	offlineDAO[model.Supplier]
}

func (offlineSupplierDAO) ExistsByName(context.Context, string) (bool, error) {
	return false, nil
}

func demoSupplier(id int64) model.Supplier {
	return model.Supplier{
		ID:            id,
		Name:          fmt.Sprintf("Demo Supplier %d", id),
		ContactPerson: "Demo Contact",
		Phone:         "000-0000",
		Email:         "supplier@example.com",
		Address:       "1 Demo Street",
	}
}
