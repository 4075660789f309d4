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

// AlertDAO is the storage contract for low-stock alerts. Deciding when an
// alert is due is left to the caller.
type AlertDAO interface {
	DAO[model.Alert]
	// GetOpen lists unresolved alerts, oldest first.
	GetOpen(ctx context.Context) ([]model.Alert, error)
	// GetOpenForProduct lists unresolved alerts for one product.
	GetOpenForProduct(ctx context.Context, productID int64) ([]model.Alert, error)
	// Resolve marks an alert resolved and reports whether it existed.
	Resolve(ctx context.Context, id int64) (bool, error)
}

// NewAlertDAO returns an AlertDAO on conn, or the offline implementation
// when conn is nil.
func NewAlertDAO(conn *bun.DB) AlertDAO {
	if conn == nil {
		return offlineAlertDAO{offlineDAO[model.Alert]{
			synth: demoAlert,
			setID: func(a *model.Alert, id int64) { a.ID = id },
		}}
	}
	return &bunAlertDAO{&bunDAO[model.Alert, AlertModel]{
		bdb:    conn,
		entity: "alert",
		pk:     "alert_id",
		order:  []string{"created_at ASC", "alert_id ASC"},
		toRec:  alertModelToModel,
		toRow:  alertToRow,
		rowID:  func(m *AlertModel) int64 { return m.ID },
		setID:  func(a *model.Alert, id int64) { a.ID = id },
	}}
}

type bunAlertDAO struct {
	*bunDAO[model.Alert, AlertModel]
}

func (d *bunAlertDAO) GetOpen(ctx context.Context) ([]model.Alert, error) {
	return d.list(ctx, "alert.get_open", "resolved = ?", false)
}

func (d *bunAlertDAO) GetOpenForProduct(ctx context.Context, productID int64) ([]model.Alert, error) {
	return d.list(ctx, "alert.get_open_for_product", "resolved = ? AND product_id = ?", false, productID)
}

func (d *bunAlertDAO) Resolve(ctx context.Context, id int64) (bool, error) {
	res, err := d.bdb.NewUpdate().
		Model((*AlertModel)(nil)).
		Set("resolved = ?", true).
		Where("alert_id = ?", id).
		Exec(ctx)
	if err != nil {
		return false, storageErr("alert.resolve", err)
	}
	ok, err := affected(res)
	if err != nil {
		return false, storageErr("alert.resolve", err)
	}
	return ok, nil
}

type offlineAlertDAO struct {
	offlineDAO[model.Alert]
}

func (offlineAlertDAO) GetOpen(context.Context) ([]model.Alert, error) {
	return []model.Alert{}, nil
}

func (offlineAlertDAO) GetOpenForProduct(context.Context, int64) ([]model.Alert, error) {
	return []model.Alert{}, nil
}

func (offlineAlertDAO) Resolve(context.Context, int64) (bool, error) {
	return false, ErrOffline
}

func demoAlert(id int64) model.Alert {
	return model.Alert{
		ID:        id,
		ProductID: 1,
		Message:   "Demo low-stock alert",
		Quantity:  2,
		Threshold: 5,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
}
