// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import "time"

// BackupSchemaVersion is written into every export.
const BackupSchemaVersion = 1

// BackupData is a container for all data exported by a backup.
// Password hashes are never exported.
type BackupData struct {
	SchemaVersion int       `json:"schema_version"`
	CreatedAt     time.Time `json:"created_at"`

	Suppliers      []Supplier      `json:"suppliers"`
	Products       []Product       `json:"products"`
	Sales          []Sale          `json:"sales"`
	StockMovements []StockMovement `json:"stock_movements"`
	Alerts         []Alert         `json:"alerts"`
	Users          []User          `json:"users"`
}
