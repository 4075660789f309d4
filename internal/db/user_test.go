// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/toeirei/stockmaster/internal/model"
)

func TestUserDAO(t *testing.T) {
	ctx := context.Background()
	users := NewUserDAO(newTestConn(t))

	for _, u := range []*model.User{
		{Username: "zoe", PasswordHash: "h1", Role: "manager", Active: true},
		{Username: "adam", PasswordHash: "h2", FullName: "Adam A.", Role: "cashier"},
	} {
		ok, err := users.Create(ctx, u)
		require.NoError(t, err)
		require.True(t, ok)
	}

	got, err := users.GetByUsername(ctx, "adam")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Adam A.", got.FullName)
	assert.Equal(t, "h2", got.PasswordHash)
	assert.False(t, got.Active)

	missing, err := users.GetByUsername(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := users.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "adam", all[0].Username)
	assert.Equal(t, "zoe", all[1].Username)

	_, err = users.Create(ctx, &model.User{Username: "zoe", PasswordHash: "x", Role: "cashier"})
	assert.ErrorIs(t, err, ErrDuplicate)

	got.Active = true
	ok, err := users.Update(ctx, got)
	require.NoError(t, err)
	assert.True(t, ok)
	exists, err := users.ExistsByUsername(ctx, "adam")
	require.NoError(t, err)
	assert.True(t, exists)
}
