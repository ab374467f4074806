// internal/database/subreddit_repository.go
package database

import (
	"context"

	"gator-threads/internal/models"
	"gator-threads/internal/utils"
)

const subredditColumns = `id, name, description`

// ListSubreddits fetches all subreddit records.
func (d *DB) ListSubreddits(ctx context.Context) ([]*models.Subreddit, error) {
	subs := []*models.Subreddit{}
	if err := d.Query(ctx, &subs, `SELECT `+subredditColumns+` FROM subreddits`); err != nil {
		return nil, wrapError(err, "failed to query all subreddits")
	}
	return subs, nil
}

// CreateSubreddit inserts a new subreddit record.
func (d *DB) CreateSubreddit(ctx context.Context, sub models.NewSubreddit) (*models.Subreddit, error) {
	var rows []*models.Subreddit
	err := d.Query(ctx, &rows,
		`INSERT INTO subreddits (name, description) VALUES (?, ?) RETURNING `+subredditColumns,
		sub.Name,
		sub.Description,
	)
	if err != nil {
		return nil, wrapError(err, "failed to create subreddit")
	}
	if len(rows) == 0 {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to create subreddit: no row returned", nil)
	}
	return rows[0], nil
}
