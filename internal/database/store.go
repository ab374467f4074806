package database

import (
	"context"

	"gator-threads/internal/models"
)

//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Store is the set of single-statement operations the HTTP handlers need.
type Store interface {
	Ping(ctx context.Context) error

	// User methods
	ListUsers(ctx context.Context) ([]*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)

	// Subreddit methods
	ListSubreddits(ctx context.Context) ([]*models.Subreddit, error)
	CreateSubreddit(ctx context.Context, sub models.NewSubreddit) (*models.Subreddit, error)

	// Thread methods
	ListThreads(ctx context.Context) ([]*models.Thread, error)
	CreateThread(ctx context.Context, thread models.NewThread) (*models.Thread, error)
	DeleteThread(ctx context.Context, id int64) (*models.Thread, error)
}

var _ Store = (*DB)(nil)
