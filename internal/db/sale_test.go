// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/stockmaster/internal/model"
)

func TestSaleDAO_CreateNormalizesTime(t *testing.T) {
	ctx := context.Background()
	sales := NewSaleDAO(newTestConn(t))

	local := time.FixedZone("CEST", 2*60*60)
	s := &model.Sale{
		ReceiptNo: "R-0001",
		ProductID: 3,
		Quantity:  2,
		UnitPrice: 4.5,
		Total:     9,
		SoldAt:    time.Date(2025, 3, 14, 15, 9, 26, 535897932, local),
	}
	ok, err := sales.Create(ctx, s)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 14, 13, 9, 26, 0, time.UTC), s.SoldAt)

	got, err := sales.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, got)
	assert.Zero(t, got.UserID)

	exists, err := sales.ExistsByReceiptNo(ctx, "R-0001")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSaleDAO_ZeroTimeDefaultsToNow(t *testing.T) {
	sales := NewSaleDAO(newTestConn(t))
	before := time.Now().UTC().Truncate(time.Second)
	s := &model.Sale{ReceiptNo: "R-NOW", ProductID: 1, Quantity: 1}
	_, err := sales.Create(context.Background(), s)
	require.NoError(t, err)
	assert.False(t, s.SoldAt.Before(before))
}

func TestSaleDAO_GetBetweenAndOrder(t *testing.T) {
	ctx := context.Background()
	sales := NewSaleDAO(newTestConn(t))
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	for i, offset := range []time.Duration{48 * time.Hour, 0, 24 * time.Hour, 72 * time.Hour} {
		s := &model.Sale{
			ReceiptNo: "R-" + string(rune('A'+i)),
			ProductID: 1,
			Quantity:  1,
			SoldAt:    base.Add(offset),
		}
		_, err := sales.Create(ctx, s)
		require.NoError(t, err)
	}

	all, err := sales.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].SoldAt.Before(all[i-1].SoldAt))
	}

	window, err := sales.GetBetween(ctx, base, base.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, "R-B", window[0].ReceiptNo)
	assert.Equal(t, "R-C", window[1].ReceiptNo)
}
