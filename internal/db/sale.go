// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/toeirei/stockmaster/internal/model"
	"github.com/uptrace/bun"
)

// SaleDAO is the storage contract for sales. Receipt numbers are unique.
// SoldAt is normalized in place to UTC whole seconds on Create and Update.
type SaleDAO interface {
	DAO[model.Sale]
	ExistsByReceiptNo(ctx context.Context, receiptNo string) (bool, error)
	// GetBetween lists sales with from <= sold_at < to, oldest first.
	GetBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error)
}

// NewSaleDAO returns a SaleDAO on conn, or the offline implementation when
// conn is nil.
func NewSaleDAO(conn *bun.DB) SaleDAO {
	if conn == nil {
		return offlineSaleDAO{offlineDAO[model.Sale]{
			synth: demoSale,
			setID: func(s *model.Sale, id int64) { s.ID = id },
		}}
	}
	return &bunSaleDAO{&bunDAO[model.Sale, SaleModel]{
		bdb:    conn,
		entity: "sale",
		pk:     "sale_id",
		order:  []string{"sold_at ASC", "sale_id ASC"},
		toRec:  saleModelToModel,
		toRow:  saleToRow,
		rowID:  func(m *SaleModel) int64 { return m.ID },
		setID:  func(s *model.Sale, id int64) { s.ID = id },
	}}
}

type bunSaleDAO struct {
	*bunDAO[model.Sale, SaleModel]
}

func (d *bunSaleDAO) ExistsByReceiptNo(ctx context.Context, receiptNo string) (bool, error) {
	return d.exists(ctx, "sale.exists_by_receipt_no", "receipt_no = ?", receiptNo)
}

func (d *bunSaleDAO) GetBetween(ctx context.Context, from, to time.Time) ([]model.Sale, error) {
	return d.list(ctx, "sale.get_between", "sold_at >= ? AND sold_at < ?", from.UTC(), to.UTC())
}

type offlineSaleDAO struct {
	offlineDAO[model.Sale]
}

func (offlineSaleDAO) ExistsByReceiptNo(context.Context, string) (bool, error) {
	return false, nil
}

func (offlineSaleDAO) GetBetween(context.Context, time.Time, time.Time) ([]model.Sale, error) {
	return []model.Sale{}, nil
}

func demoSale(id int64) model.Sale {
	return model.Sale{
		ID:        id,
		ReceiptNo: fmt.Sprintf("DEMO-R%06d", id),
		ProductID: 1,
		Quantity:  1,
		UnitPrice: 9.99,
		Total:     9.99,
		SoldAt:    time.Now().UTC().Truncate(time.Second),
	}
}
