package feed

import (
	"context"
	"html/template"
	"sync"

	"github.com/sirupsen/logrus"
)

// State is where a Board is in its load cycle.
type State int

const (
	StateIdle State = iota
	StateFetching
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetching:
		return "fetching"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Board is the rendered thread list for one topic. Each Load moves it
// Idle/Rendered/Failed -> Fetching -> Rendered or Failed. A failed load keeps
// whatever was rendered before. Concurrent loads are last-write-wins.
type Board struct {
	mu       sync.RWMutex
	topic    string
	fetcher  Fetcher
	linkBase string
	state    State
	items    template.HTML
}

func NewBoard(topic string, fetcher Fetcher, linkBase string) *Board {
	return &Board{
		topic:    topic,
		fetcher:  fetcher,
		linkBase: linkBase,
		state:    StateIdle,
	}
}

// Load fetches the topic once and replaces the rendered items on success.
func (b *Board) Load(ctx context.Context) error {
	b.setState(StateFetching)
	log := logrus.WithField("topic", b.topic)

	posts, err := b.fetcher.Fetch(ctx, b.topic)
	if err != nil {
		log.WithError(err).Error("failed to load feed")
		b.setState(StateFailed)
		return err
	}

	items, err := RenderItems(b.linkBase, posts)
	if err != nil {
		log.WithError(err).Error("failed to render feed")
		b.setState(StateFailed)
		return err
	}

	b.mu.Lock()
	b.items = items
	b.state = StateRendered
	b.mu.Unlock()

	log.WithField("posts", len(posts)).Debug("feed rendered")
	return nil
}

func (b *Board) Topic() string {
	return b.topic
}

func (b *Board) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Items returns the current contents of the list container.
func (b *Board) Items() template.HTML {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.items
}

// Page renders the full HTML document around the current items.
func (b *Board) Page() ([]byte, error) {
	return RenderPage(b.topic, b.Items())
}

func (b *Board) setState(state State) {
	b.mu.Lock()
	b.state = state
	b.mu.Unlock()
}
