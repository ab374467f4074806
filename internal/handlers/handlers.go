package handlers

import (
	"gator-threads/internal/database"
	"gator-threads/internal/feed"
	"gator-threads/internal/utils"
)

// Server holds all handler dependencies
type Server struct {
	Store   database.Store
	Boards  *feed.Boards
	Metrics *utils.MetricsCollector

	// HideStoreErrors drops the driver message from store error bodies,
	// leaving only the operation that failed.
	HideStoreErrors bool
}

// NewServer creates a new Server instance with the given components. Boards
// and metrics are optional; their routes are left out when nil.
func NewServer(
	store database.Store,
	boards *feed.Boards,
	metrics *utils.MetricsCollector,
	hideStoreErrors bool,
) *Server {
	return &Server{
		Store:           store,
		Boards:          boards,
		Metrics:         metrics,
		HideStoreErrors: hideStoreErrors,
	}
}
