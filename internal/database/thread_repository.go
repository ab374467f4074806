// internal/database/thread_repository.go
package database

import (
	"context"

	"gator-threads/internal/models"
	"gator-threads/internal/utils"
)

const threadColumns = `id, subreddit_id, author_id, title, content`

// ListThreads fetches every thread across all subreddits.
func (d *DB) ListThreads(ctx context.Context) ([]*models.Thread, error) {
	threads := []*models.Thread{}
	if err := d.Query(ctx, &threads, `SELECT `+threadColumns+` FROM threads`); err != nil {
		return nil, wrapError(err, "failed to query all threads")
	}
	return threads, nil
}

// CreateThread inserts a thread into a subreddit. Whether the subreddit and
// author exist is decided by the foreign keys, not checked here.
func (d *DB) CreateThread(ctx context.Context, thread models.NewThread) (*models.Thread, error) {
	var rows []*models.Thread
	err := d.Query(ctx, &rows,
		`INSERT INTO threads (subreddit_id, author_id, title, content) VALUES (?, ?, ?, ?) RETURNING `+threadColumns,
		thread.SubredditID,
		thread.AuthorID,
		thread.Title,
		thread.Content,
	)
	if err != nil {
		return nil, wrapError(err, "failed to create thread")
	}
	if len(rows) == 0 {
		return nil, utils.NewAppError(utils.ErrDatabase, "failed to create thread: no row returned", nil)
	}
	return rows[0], nil
}

// DeleteThread removes a thread and returns the deleted row.
func (d *DB) DeleteThread(ctx context.Context, id int64) (*models.Thread, error) {
	var rows []*models.Thread
	err := d.Query(ctx, &rows, `DELETE FROM threads WHERE id = ? RETURNING `+threadColumns, id)
	if err != nil {
		return nil, wrapError(err, "failed to delete thread")
	}
	if len(rows) == 0 {
		return nil, utils.NewNotFoundError("Thread")
	}
	return rows[0], nil
}
