// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core data structures used throughout Stockmaster.
package model // import "github.com/toeirei/stockmaster/internal/model"

import (
	"fmt"
	"time"
)

// Supplier is a vendor that delivers products. Name is the business key and
// must be unique among suppliers.
type Supplier struct {
	ID            int64  `json:"supplier_id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// String returns the display name, including the contact person when known.
func (s Supplier) String() string {
	if s.ContactPerson != "" {
		return fmt.Sprintf("%s (%s)", s.Name, s.ContactPerson)
	}
	return s.Name
}

// Product is a sellable item kept in stock.
type Product struct {
	ID           int64   `json:"product_id"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	Quantity     int     `json:"quantity"`
	ReorderLevel int     `json:"reorder_level"`
	// SupplierID is 0 when the product has no supplier.
	SupplierID int64 `json:"supplier_id"`
}

// IsLowStock reports whether the quantity on hand has reached the reorder level.
func (p Product) IsLowStock() bool {
	return p.Quantity <= p.ReorderLevel
}

// String returns "SKU name".
func (p Product) String() string {
	return fmt.Sprintf("%s %s", p.SKU, p.Name)
}

// Sale is a single sold line: one product, a quantity and the price charged.
type Sale struct {
	ID        int64     `json:"sale_id"`
	ReceiptNo string    `json:"receipt_no"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unit_price"`
	Total     float64   `json:"total"`
	SoldAt    time.Time `json:"sold_at"`
}

// MovementType classifies a stock movement.
type MovementType string

const (
	// MovementIn is stock received, e.g. a supplier delivery.
	MovementIn MovementType = "IN"
	// MovementOut is stock leaving, e.g. a sale.
	MovementOut MovementType = "OUT"
	// MovementAdjust is a manual correction after a count.
	MovementAdjust MovementType = "ADJUST"
)

// StockMovement records a change to a product's quantity on hand.
type StockMovement struct {
	ID        int64        `json:"movement_id"`
	ProductID int64        `json:"product_id"`
	Type      MovementType `json:"movement_type"`
	Quantity  int          `json:"quantity"`
	Reason    string       `json:"reason"`
	CreatedAt time.Time    `json:"created_at"`
}

// Delta returns the signed quantity change the movement applies.
func (m StockMovement) Delta() int {
	if m.Type == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

// Alert is a stored low-stock signal for a product.
type Alert struct {
	ID        int64 `json:"alert_id"`
	ProductID int64 `json:"product_id"`
	// MovementID is the movement that triggered the alert, 0 if none.
	MovementID int64     `json:"movement_id"`
	Message    string    `json:"message"`
	Quantity   int       `json:"quantity"`
	Threshold  int       `json:"threshold"`
	Resolved   bool      `json:"resolved"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is an operator of the point-of-sale terminal.
type User struct {
	ID           int64  `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}

// String returns the username, with the full name when set.
func (u User) String() string {
	if u.FullName != "" {
		return fmt.Sprintf("%s (%s)", u.FullName, u.Username)
	}
	return u.Username
}
