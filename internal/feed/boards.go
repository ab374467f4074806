package feed

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Boards hands out one Board per topic. Boards nobody asked for within the
// TTL are dropped.
type Boards struct {
	mu       sync.Mutex
	fetcher  Fetcher
	linkBase string
	boards   *cache.Cache
}

func NewBoards(fetcher Fetcher, linkBase string, ttl time.Duration) *Boards {
	return &Boards{
		fetcher:  fetcher,
		linkBase: linkBase,
		boards:   cache.New(ttl, 2*ttl),
	}
}

// Board returns the board for topic, creating it on first use. Every call
// pushes the board's expiry out by the TTL.
func (r *Boards) Board(topic string) *Board {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, found := r.boards.Get(topic); found {
		board := cached.(*Board)
		r.boards.SetDefault(topic, board)
		return board
	}

	board := NewBoard(topic, r.fetcher, r.linkBase)
	r.boards.SetDefault(topic, board)
	return board
}

// Len reports how many boards are currently held.
func (r *Boards) Len() int {
	return r.boards.ItemCount()
}
