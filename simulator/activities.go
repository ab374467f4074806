package simulator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"
)

type simulatedThread struct {
	ID          int64  `json:"id"`
	SubredditID int64  `json:"subreddit_id"`
	AuthorID    int64  `json:"author_id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SimulateActivities creates NumThreads threads across the worker pool.
// Subreddits are picked by a Zipf distribution, so a few get most threads.
// A DeleteRatio share of threads is deleted and then deleted again, and the
// second delete must be a 404.
func (s *EnhancedSimulator) SimulateActivities(ctx context.Context) error {
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.workers(); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			log := logrus.WithField("worker", workerID)
			for n := range jobs {
				if err := s.simulateThread(ctx, n); err != nil {
					log.WithError(err).Warn("thread activity failed")
				}
			}
		}(w)
	}

	for i := 0; i < s.config.NumThreads; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	logrus.Info("activities simulation completed")
	return nil
}

func (s *EnhancedSimulator) simulateThread(ctx context.Context, n int) error {
	sub := s.subreddits[s.getZipfIndex()]
	author := s.users[s.randomIndex(len(s.users))]

	payload := map[string]interface{}{
		"author_id": author.ID,
		"title":     fmt.Sprintf("Thread %d in %s", n, sub.Name),
		"content":   fmt.Sprintf("Posted by %s", author.Username),
	}

	var thread simulatedThread
	if err := s.create(ctx, fmt.Sprintf("/threads/%d", sub.ID), payload, &thread); err != nil {
		return err
	}
	if thread.SubredditID != sub.ID || thread.AuthorID != author.ID {
		s.recordViolation(fmt.Sprintf("thread %d stored with subreddit %d author %d, sent %d/%d",
			thread.ID, thread.SubredditID, thread.AuthorID, sub.ID, author.ID))
	}

	s.stats.mu.Lock()
	s.stats.ThreadsCreated++
	s.stats.ThreadsPerSub[sub.ID]++
	s.stats.mu.Unlock()

	if !s.shouldDelete() {
		return nil
	}
	return s.deleteTwice(ctx, thread)
}

func (s *EnhancedSimulator) deleteTwice(ctx context.Context, thread simulatedThread) error {
	endpoint := fmt.Sprintf("/threads/%d", thread.ID)

	status, body, err := s.makeRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("DELETE %s: unexpected status %d: %s", endpoint, status, body)
	}
	var deleted simulatedThread
	if err := json.Unmarshal(body, &deleted); err != nil {
		return fmt.Errorf("DELETE %s: failed to parse response: %w", endpoint, err)
	}
	if deleted != thread {
		s.recordViolation(fmt.Sprintf("DELETE %s returned %+v, created %+v", endpoint, deleted, thread))
	}

	s.stats.mu.Lock()
	s.stats.ThreadsDeleted++
	s.stats.mu.Unlock()

	status, body, err = s.makeRequest(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	var errBody errorResponse
	if status != http.StatusNotFound || json.Unmarshal(body, &errBody) != nil || errBody.Error == "" {
		s.recordViolation(fmt.Sprintf("repeat DELETE %s returned %d: %s", endpoint, status, body))
		return nil
	}

	s.stats.mu.Lock()
	s.stats.RepeatDeletes404++
	s.stats.mu.Unlock()
	return nil
}

func (s *EnhancedSimulator) recordViolation(msg string) {
	logrus.Error(msg)
	s.stats.mu.Lock()
	s.stats.Violations = append(s.stats.Violations, msg)
	s.stats.mu.Unlock()
}

// getZipfIndex picks a subreddit index, skewed towards the first ones.
func (s *EnhancedSimulator) getZipfIndex() int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	if s.zipf == nil {
		return 0
	}
	return int(s.zipf.Uint64())
}

func (s *EnhancedSimulator) randomIndex(n int) int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rng.Intn(n)
}

func (s *EnhancedSimulator) shouldDelete() bool {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.rng.Float64() < s.config.DeleteRatio
}
