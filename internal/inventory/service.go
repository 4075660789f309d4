// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// Package inventory records sales and stock movements and raises low-stock
// alerts. Every step is a separate DAO call; there is no transaction spanning
// them, so a failure part way leaves the earlier writes in place.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/toeirei/stockmaster/internal/db"
	"github.com/toeirei/stockmaster/internal/logging"
	"github.com/toeirei/stockmaster/internal/model"
)

var (
	// ErrInvalidQuantity is returned for a zero or negative quantity.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrUnknownProduct is returned when the referenced product does not exist.
	ErrUnknownProduct = errors.New("unknown product")
)

// Service coordinates the DAOs for stock-changing operations.
type Service struct {
	DAOs *db.DAOs
	// Now is the clock used for timestamps and receipt numbers.
	Now func() time.Time
}

// NewService returns a Service on d using the wall clock.
func NewService(d *db.DAOs) *Service {
	return &Service{DAOs: d, Now: time.Now}
}

// ReceiveStock records an IN movement of qty units for productID and adds
// them to the quantity on hand.
func (s *Service) ReceiveStock(ctx context.Context, productID int64, qty int, reason string) (*model.StockMovement, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}
	mv, err := s.move(ctx, productID, model.MovementIn, qty, reason)
	if err != nil {
		return nil, err
	}
	if err := s.adjust(ctx, productID, qty); err != nil {
		return mv, err
	}
	return mv, nil
}

// AdjustStock records a manual correction of delta units (either sign) and
// applies it to the quantity on hand. A resulting low stock level raises an
// alert like a sale would.
func (s *Service) AdjustStock(ctx context.Context, productID int64, delta int, reason string) (*model.StockMovement, error) {
	if delta == 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := s.product(ctx, productID); err != nil {
		return nil, err
	}
	mv, err := s.move(ctx, productID, model.MovementAdjust, delta, reason)
	if err != nil {
		return nil, err
	}
	if err := s.adjust(ctx, productID, delta); err != nil {
		return mv, err
	}
	if delta < 0 {
		if _, err := s.CheckLowStock(ctx, productID, mv.ID); err != nil {
			return mv, err
		}
	}
	return mv, nil
}

// RecordSale stores sale, books the matching OUT movement, reduces the
// quantity on hand and then checks the product against its reorder level.
// A zero UnitPrice is taken from the product, Total is always recomputed and
// an empty ReceiptNo is generated. The alert raised, if any, is returned.
func (s *Service) RecordSale(ctx context.Context, sale *model.Sale) (*model.Alert, error) {
	if sale == nil {
		return nil, db.ErrNilRecord
	}
	if sale.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.product(ctx, sale.ProductID)
	if err != nil {
		return nil, err
	}
	if sale.UnitPrice == 0 {
		sale.UnitPrice = p.Price
	}
	sale.Total = float64(sale.Quantity) * sale.UnitPrice
	if sale.ReceiptNo == "" {
		sale.ReceiptNo = s.receiptNo()
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = s.Now()
	}

	ok, err := s.DAOs.Sales.Create(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("record sale: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("record sale: no row written for receipt %s", sale.ReceiptNo)
	}
	mv, err := s.move(ctx, sale.ProductID, model.MovementOut, sale.Quantity, "sale "+sale.ReceiptNo)
	if err != nil {
		return nil, err
	}
	if err := s.adjust(ctx, sale.ProductID, mv.Delta()); err != nil {
		return nil, err
	}
	return s.CheckLowStock(ctx, sale.ProductID, mv.ID)
}

// CheckLowStock creates an alert for productID when its quantity is at or
// below the reorder level and no unresolved alert exists for it yet.
// movementID names the triggering movement and may be 0. It returns the new
// alert, or nil when none was needed.
func (s *Service) CheckLowStock(ctx context.Context, productID, movementID int64) (*model.Alert, error) {
	p, err := s.product(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsLowStock() {
		return nil, nil
	}
	open, err := s.DAOs.Alerts.GetOpenForProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("check low stock: %w", err)
	}
	if len(open) > 0 {
		return nil, nil
	}
	a := &model.Alert{
		ProductID:  productID,
		MovementID: movementID,
		Message:    fmt.Sprintf("%s (%s) is low on stock: %d left, reorder level %d", p.Name, p.SKU, p.Quantity, p.ReorderLevel),
		Quantity:   p.Quantity,
		Threshold:  p.ReorderLevel,
		CreatedAt:  s.Now(),
	}
	ok, err := s.DAOs.Alerts.Create(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("raise alert: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("raise alert: no row written for product %d", productID)
	}
	logging.Infof("inventory: low-stock alert %d for product %d", a.ID, productID)
	return a, nil
}

func (s *Service) product(ctx context.Context, id int64) (*model.Product, error) {
	p, err := s.DAOs.Products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	if p == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProduct, id)
	}
	return p, nil
}

func (s *Service) move(ctx context.Context, productID int64, typ model.MovementType, qty int, reason string) (*model.StockMovement, error) {
	mv := &model.StockMovement{
		ProductID: productID,
		Type:      typ,
		Quantity:  qty,
		Reason:    reason,
		CreatedAt: s.Now(),
	}
	if _, err := s.DAOs.Movements.Create(ctx, mv); err != nil {
		return nil, fmt.Errorf("record %s movement: %w", typ, err)
	}
	return mv, nil
}

// adjust applies delta to the stored quantity. Offline DAOs cannot adjust in
// place; that is logged and otherwise ignored.
func (s *Service) adjust(ctx context.Context, productID int64, delta int) error {
	ok, err := s.DAOs.Products.AdjustQuantity(ctx, productID, delta)
	if errors.Is(err, db.ErrOffline) {
		logging.Debugf("inventory: offline, quantity of product %d not adjusted", productID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("adjust quantity: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}
	return nil
}

func (s *Service) receiptNo() string {
	return fmt.Sprintf("R-%s-%04d", s.Now().UTC().Format("20060102150405"), rand.IntN(10000))
}
