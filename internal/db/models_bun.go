// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"time"

	"github.com/toeirei/stockmaster/internal/model"
	"github.com/uptrace/bun"
)

// SupplierModel maps the `suppliers` table for Bun queries.
type SupplierModel struct {
	bun.BaseModel `bun:"table:suppliers"`
	ID            int64          `bun:"supplier_id,pk,autoincrement"`
	Name          string         `bun:"name,notnull,unique"`
	ContactPerson sql.NullString `bun:"contact_person"`
	Phone         sql.NullString `bun:"phone"`
	Email         sql.NullString `bun:"email"`
	Address       sql.NullString `bun:"address"`
}

// ProductModel maps the `products` table.
type ProductModel struct {
	bun.BaseModel `bun:"table:products"`
	ID            int64          `bun:"product_id,pk,autoincrement"`
	SKU           string         `bun:"sku,notnull,unique"`
	Name          string         `bun:"name,notnull"`
	Description   sql.NullString `bun:"description"`
	Category      sql.NullString `bun:"category"`
	Price         float64        `bun:"price,notnull"`
	Quantity      int            `bun:"quantity,notnull"`
	ReorderLevel  int            `bun:"reorder_level,notnull"`
	SupplierID    sql.NullInt64  `bun:"supplier_id"`
}

// SaleModel maps the `sales` table.
type SaleModel struct {
	bun.BaseModel `bun:"table:sales"`
	ID            int64         `bun:"sale_id,pk,autoincrement"`
	ReceiptNo     string        `bun:"receipt_no,notnull,unique"`
	ProductID     int64         `bun:"product_id,notnull"`
	UserID        sql.NullInt64 `bun:"user_id"`
	Quantity      int           `bun:"quantity,notnull"`
	UnitPrice     float64       `bun:"unit_price,notnull"`
	Total         float64       `bun:"total,notnull"`
	SoldAt        time.Time     `bun:"sold_at,notnull"`
}

// StockMovementModel maps the `stock_movements` table.
type StockMovementModel struct {
	bun.BaseModel `bun:"table:stock_movements"`
	ID            int64          `bun:"movement_id,pk,autoincrement"`
	ProductID     int64          `bun:"product_id,notnull"`
	Type          string         `bun:"movement_type,notnull"`
	Quantity      int            `bun:"quantity,notnull"`
	Reason        sql.NullString `bun:"reason"`
	CreatedAt     time.Time      `bun:"created_at,notnull"`
}

// AlertModel maps the `alerts` table.
type AlertModel struct {
	bun.BaseModel `bun:"table:alerts"`
	ID            int64         `bun:"alert_id,pk,autoincrement"`
	ProductID     int64         `bun:"product_id,notnull"`
	MovementID    sql.NullInt64 `bun:"movement_id"`
	Message       string        `bun:"message,notnull"`
	Quantity      int           `bun:"quantity,notnull"`
	Threshold     int           `bun:"threshold,notnull"`
	Resolved      bool          `bun:"resolved,notnull"`
	CreatedAt     time.Time     `bun:"created_at,notnull"`
}

// UserModel maps the `users` table.
type UserModel struct {
	bun.BaseModel `bun:"table:users"`
	ID            int64          `bun:"user_id,pk,autoincrement"`
	Username      string         `bun:"username,notnull,unique"`
	PasswordHash  string         `bun:"password_hash,notnull"`
	FullName      sql.NullString `bun:"full_name"`
	Role          string         `bun:"role,notnull"`
	Active        bool           `bun:"active,notnull"`
}

// allModels lists every table model, parents first.
var allModels = []any{
	(*SupplierModel)(nil),
	(*ProductModel)(nil),
	(*UserModel)(nil),
	(*SaleModel)(nil),
	(*StockMovementModel)(nil),
	(*AlertModel)(nil),
}

// tableNames lists the table behind each entry of allModels.
var tableNames = []string{"suppliers", "products", "users", "sales", "stock_movements", "alerts"}

// --- Mapping helpers (centralized conversions) ---

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullID stores a zero foreign key as NULL.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

// storeTime normalizes timestamps to what every supported engine can hold
// without loss: UTC, whole seconds.
func storeTime(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Second)
}

func supplierModelToModel(m SupplierModel) model.Supplier {
	return model.Supplier{
		ID:            m.ID,
		Name:          m.Name,
		ContactPerson: m.ContactPerson.String,
		Phone:         m.Phone.String,
		Email:         m.Email.String,
		Address:       m.Address.String,
	}
}

func supplierToRow(s *model.Supplier) *SupplierModel {
	return &SupplierModel{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: nullString(s.ContactPerson),
		Phone:         nullString(s.Phone),
		Email:         nullString(s.Email),
		Address:       nullString(s.Address),
	}
}

func productModelToModel(m ProductModel) model.Product {
	return model.Product{
		ID:           m.ID,
		SKU:          m.SKU,
		Name:         m.Name,
		Description:  m.Description.String,
		Category:     m.Category.String,
		Price:        m.Price,
		Quantity:     m.Quantity,
		ReorderLevel: m.ReorderLevel,
		SupplierID:   m.SupplierID.Int64,
	}
}

func productToRow(p *model.Product) *ProductModel {
	return &ProductModel{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  nullString(p.Description),
		Category:     nullString(p.Category),
		Price:        p.Price,
		Quantity:     p.Quantity,
		ReorderLevel: p.ReorderLevel,
		SupplierID:   nullID(p.SupplierID),
	}
}

func saleModelToModel(m SaleModel) model.Sale {
	return model.Sale{
		ID:        m.ID,
		ReceiptNo: m.ReceiptNo,
		ProductID: m.ProductID,
		UserID:    m.UserID.Int64,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		Total:     m.Total,
		SoldAt:    m.SoldAt.UTC(),
	}
}

func saleToRow(s *model.Sale) *SaleModel {
	s.SoldAt = storeTime(s.SoldAt)
	return &SaleModel{
		ID:        s.ID,
		ReceiptNo: s.ReceiptNo,
		ProductID: s.ProductID,
		UserID:    nullID(s.UserID),
		Quantity:  s.Quantity,
		UnitPrice: s.UnitPrice,
		Total:     s.Total,
		SoldAt:    s.SoldAt,
	}
}

func stockMovementModelToModel(m StockMovementModel) model.StockMovement {
	return model.StockMovement{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      model.MovementType(m.Type),
		Quantity:  m.Quantity,
		Reason:    m.Reason.String,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func stockMovementToRow(sm *model.StockMovement) *StockMovementModel {
	sm.CreatedAt = storeTime(sm.CreatedAt)
	return &StockMovementModel{
		ID:        sm.ID,
		ProductID: sm.ProductID,
		Type:      string(sm.Type),
		Quantity:  sm.Quantity,
		Reason:    nullString(sm.Reason),
		CreatedAt: sm.CreatedAt,
	}
}

func alertModelToModel(m AlertModel) model.Alert {
	return model.Alert{
		ID:         m.ID,
		ProductID:  m.ProductID,
		MovementID: m.MovementID.Int64,
		Message:    m.Message,
		Quantity:   m.Quantity,
		Threshold:  m.Threshold,
		Resolved:   m.Resolved,
		CreatedAt:  m.CreatedAt.UTC(),
	}
}

func alertToRow(a *model.Alert) *AlertModel {
	a.CreatedAt = storeTime(a.CreatedAt)
	return &AlertModel{
		ID:         a.ID,
		ProductID:  a.ProductID,
		MovementID: nullID(a.MovementID),
		Message:    a.Message,
		Quantity:   a.Quantity,
		Threshold:  a.Threshold,
		Resolved:   a.Resolved,
		CreatedAt:  a.CreatedAt,
	}
}

func userModelToModel(m UserModel) model.User {
	return model.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		FullName:     m.FullName.String,
		Role:         m.Role,
		Active:       m.Active,
	}
}

func userToRow(u *model.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		FullName:     nullString(u.FullName),
		Role:         u.Role,
		Active:       u.Active,
	}
}
