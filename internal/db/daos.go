// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "github.com/uptrace/bun"

// DAOs bundles one DAO per entity, all sharing the same connection.
type DAOs struct {
	Suppliers SupplierDAO
	Products  ProductDAO
	Sales     SaleDAO
	Movements StockMovementDAO
	Alerts    AlertDAO
	Users     UserDAO

	offline bool
}

// NewDAOs builds every DAO on conn. A nil conn selects offline mode for all
// of them; the choice is made once, here.
func NewDAOs(conn *bun.DB) *DAOs {
	return &DAOs{
		Suppliers: NewSupplierDAO(conn),
		Products:  NewProductDAO(conn),
		Sales:     NewSaleDAO(conn),
		Movements: NewStockMovementDAO(conn),
		Alerts:    NewAlertDAO(conn),
		Users:     NewUserDAO(conn),
		offline:   conn == nil,
	}
}

// Offline reports whether the DAOs were built without a connection.
func (d *DAOs) Offline() bool {
	return d.offline
}
