// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"

	"github.com/toeirei/stockmaster/internal/model"
	"github.com/uptrace/bun"
)

// UserDAO is the storage contract for terminal users. Usernames are unique.
// Password hashes are stored as given; hashing happens in the caller.
type UserDAO interface {
	DAO[model.User]
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// GetByUsername returns (nil, nil) when no user has that name.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// NewUserDAO returns a UserDAO on conn, or the offline implementation when
// conn is nil.
func NewUserDAO(conn *bun.DB) UserDAO {
	if conn == nil {
		return offlineUserDAO{offlineDAO[model.User]{
			synth: demoUser,
			setID: func(u *model.User, id int64) { u.ID = id },
		}}
	}
	return &bunUserDAO{&bunDAO[model.User, UserModel]{
		bdb:    conn,
		entity: "user",
		pk:     "user_id",
		order:  []string{"username ASC", "user_id ASC"},
		toRec:  userModelToModel,
		toRow:  userToRow,
		rowID:  func(m *UserModel) int64 { return m.ID },
		setID:  func(u *model.User, id int64) { u.ID = id },
	}}
}

type bunUserDAO struct {
	*bunDAO[model.User, UserModel]
}

func (d *bunUserDAO) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return d.exists(ctx, "user.exists_by_username", "username = ?", username)
}

func (d *bunUserDAO) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return d.first(ctx, "user.get_by_username", "username = ?", username)
}

type offlineUserDAO struct {
	offlineDAO[model.User]
}

func (offlineUserDAO) ExistsByUsername(context.Context, string) (bool, error) {
	return false, nil
}

func (offlineUserDAO) GetByUsername(_ context.Context, username string) (*model.User, error) {
	u := demoUser(randomID())
	u.Username = username
	return &u, nil
}

func demoUser(id int64) model.User {
	return model.User{
		ID:       id,
		Username: fmt.Sprintf("demo%d", id),
		FullName: "Demo User",
		Role:     "cashier",
		Active:   true,
	}
}
