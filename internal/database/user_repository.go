// internal/database/user_repository.go
package database

import (
	"context"

	"gator-threads/internal/models"
	"gator-threads/internal/utils"
)

const userColumns = `id, username, email`

// ListUsers fetches all users. An empty table yields an empty, non-nil slice.
func (d *DB) ListUsers(ctx context.Context) ([]*models.User, error) {
	users := []*models.User{}
	if err := d.Query(ctx, &users, `SELECT `+userColumns+` FROM users`); err != nil {
		return nil, wrapError(err, "failed to query all users")
	}
	return users, nil
}

// GetUser fetches a user by their ID.
func (d *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var users []*models.User
	err := d.Query(ctx, &users, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, wrapError(err, "failed to query user by id")
	}
	if len(users) == 0 {
		return nil, utils.NewNotFoundError("User")
	}
	return users[0], nil
}

// CreateUser inserts a new user and returns the stored row.
func (d *DB) CreateUser(ctx context.Context, user models.NewUser) (*models.User, error) {
	var rows []*models.User
	err := d.Query(ctx, &rows,
		`INSERT INTO users (username, email) VALUES (?, ?) RETURNING `+userColumns,
		user.Username,
		user.Email,
	)
	if err != nil {
		return nil, wrapError(err, "failed to create user")
	}
	if len(rows) == 0 {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to create user: no row returned", nil)
	}
	return rows[0], nil
}
