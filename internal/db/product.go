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

// ProductDAO is the storage contract for products. SKUs are unique.
type ProductDAO interface {
	DAO[model.Product]
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	// GetBySupplier lists the products delivered by one supplier.
	GetBySupplier(ctx context.Context, supplierID int64) ([]model.Product, error)
	// GetLowStock lists products whose quantity is at or below their reorder level.
	GetLowStock(ctx context.Context) ([]model.Product, error)
	// AdjustQuantity adds delta (which may be negative) to the quantity on
	// hand in a single statement and reports whether the product exists.
	AdjustQuantity(ctx context.Context, id int64, delta int) (bool, error)
}

// NewProductDAO returns a ProductDAO on conn, or the offline implementation
// when conn is nil.
func NewProductDAO(conn *bun.DB) ProductDAO {
	if conn == nil {
		return offlineProductDAO{offlineDAO[model.Product]{
			synth: demoProduct,
			setID: func(p *model.Product, id int64) { p.ID = id },
		}}
	}
	return &bunProductDAO{&bunDAO[model.Product, ProductModel]{
		bdb:    conn,
		entity: "product",
		pk:     "product_id",
		order:  []string{"name ASC", "product_id ASC"},
		toRec:  productModelToModel,
		toRow:  productToRow,
		rowID:  func(m *ProductModel) int64 { return m.ID },
		setID:  func(p *model.Product, id int64) { p.ID = id },
	}}
}

type bunProductDAO struct {
	*bunDAO[model.Product, ProductModel]
}

func (d *bunProductDAO) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return d.exists(ctx, "product.exists_by_sku", "sku = ?", sku)
}

func (d *bunProductDAO) GetBySupplier(ctx context.Context, supplierID int64) ([]model.Product, error) {
	return d.list(ctx, "product.get_by_supplier", "supplier_id = ?", supplierID)
}

func (d *bunProductDAO) GetLowStock(ctx context.Context) ([]model.Product, error) {
	return d.list(ctx, "product.get_low_stock", "quantity <= reorder_level")
}

func (d *bunProductDAO) AdjustQuantity(ctx context.Context, id int64, delta int) (bool, error) {
	res, err := d.bdb.NewUpdate().
		Model((*ProductModel)(nil)).
		Set("quantity = quantity + ?", delta).
		Where("product_id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, storageErr("product.adjust_quantity", err)
	}
	ok, err := affected(res)
	if err != nil {
		return false, storageErr("product.adjust_quantity", err)
	}
	return ok, nil
}

type offlineProductDAO struct {
	offlineDAO[model.Product]
}

func (offlineProductDAO) ExistsBySKU(context.Context, string) (bool, error) {
	return false, nil
}

func (offlineProductDAO) GetBySupplier(context.Context, int64) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (offlineProductDAO) GetLowStock(context.Context) ([]model.Product, error) {
	return []model.Product{}, nil
}

func (offlineProductDAO) AdjustQuantity(context.Context, int64, int) (bool, error) {
	return false, ErrOffline
}

func demoProduct(id int64) model.Product {
	return model.Product{
		ID:           id,
		SKU:          fmt.Sprintf("DEMO-%06d", id),
		Name:         fmt.Sprintf("Demo Product %d", id),
		Description:  "Placeholder product",
		Category:     "Demo",
		Price:        9.99,
		Quantity:     10,
		ReorderLevel: 5,
	}
}
