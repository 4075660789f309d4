// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"time"

	"github.com/toeirei/stockmaster/internal/model"
	"github.com/uptrace/bun"
)

// StockMovementDAO is the storage contract for stock movements. Movements
// have no business key; they are looked up by id or product.
type StockMovementDAO interface {
	DAO[model.StockMovement]
	GetByProduct(ctx context.Context, productID int64) ([]model.StockMovement, error)
}

// NewStockMovementDAO returns a StockMovementDAO on conn, or the offline
// implementation when conn is nil.
func NewStockMovementDAO(conn *bun.DB) StockMovementDAO {
	if conn == nil {
		return offlineStockMovementDAO{offlineDAO[model.StockMovement]{
			synth: demoStockMovement,
			setID: func(m *model.StockMovement, id int64) { m.ID = id },
		}}
	}
	return &bunStockMovementDAO{&bunDAO[model.StockMovement, StockMovementModel]{
		bdb:    conn,
		entity: "stock_movement",
		pk:     "movement_id",
		order:  []string{"created_at ASC", "movement_id ASC"},
		toRec:  stockMovementModelToModel,
		toRow:  stockMovementToRow,
		rowID:  func(m *StockMovementModel) int64 { return m.ID },
		setID:  func(m *model.StockMovement, id int64) { m.ID = id },
	}}
}

type bunStockMovementDAO struct {
	*bunDAO[model.StockMovement, StockMovementModel]
}

func (d *bunStockMovementDAO) GetByProduct(ctx context.Context, productID int64) ([]model.StockMovement, error) {
	return d.list(ctx, "stock_movement.get_by_product", "product_id = ?", productID)
}

type offlineStockMovementDAO struct {
	offlineDAO[model.StockMovement]
}

func (offlineStockMovementDAO) GetByProduct(context.Context, int64) ([]model.StockMovement, error) {
	return []model.StockMovement{}, nil
}

func demoStockMovement(id int64) model.StockMovement {
	return model.StockMovement{
		ID:        id,
		ProductID: 1,
		Type:      model.MovementIn,
		Quantity:  1,
		Reason:    "demo",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
