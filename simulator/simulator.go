package simulator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gojek/heimdall/v7"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/sirupsen/logrus"
)

type SimConfig struct {
	NumUsers       int
	NumSubreddits  int
	NumThreads     int
	DeleteRatio    float64 // share of created threads that get deleted
	Workers        int
	ZipfS          float64 // must be > 1
	EngineURL      string
	RequestTimeout time.Duration
	MaxRetries     int // GET retries on transport errors and 5xx
	Seed           int64
}

// DefaultSimConfig returns a small run against a local server.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		NumUsers:       50,
		NumSubreddits:  10,
		NumThreads:     500,
		DeleteRatio:    0.2,
		Workers:        8,
		ZipfS:          1.07,
		EngineURL:      "http://localhost:8080",
		RequestTimeout: 5 * time.Second,
		MaxRetries:     2,
		Seed:           time.Now().UnixNano(),
	}
}

type SimulationStats struct {
	mu                sync.RWMutex
	StartTime         time.Time
	TotalRequests     int64
	SuccessRequests   int64
	FailedRequests    int64
	AverageLatency    time.Duration
	UsersCreated      int
	SubredditsCreated int
	ThreadsCreated    int
	ThreadsDeleted    int
	RepeatDeletes404  int
	Violations        []string
	ThreadsPerSub     map[int64]int
}

type SimulatedUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type simulatedSubreddit struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EnhancedSimulator struct {
	config     SimConfig
	stats      *SimulationStats
	users      []*SimulatedUser
	subreddits []*simulatedSubreddit
	reader     heimdall.Doer // GET, retried
	writer     heimdall.Doer // everything else, one attempt

	randMu sync.Mutex
	rng    *rand.Rand
	zipf   *rand.Zipf
}

func NewEnhancedSimulator(config SimConfig) *EnhancedSimulator {
	backoff := heimdall.NewExponentialBackoff(50*time.Millisecond, time.Second, 2.0, 10*time.Millisecond)
	reader := httpclient.NewClient(
		httpclient.WithHTTPTimeout(config.RequestTimeout),
		httpclient.WithRetryCount(config.MaxRetries),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
	)
	// A POST or DELETE that reached the server must not be replayed.
	writer := httpclient.NewClient(
		httpclient.WithHTTPTimeout(config.RequestTimeout),
		httpclient.WithRetryCount(0),
	)

	return &EnhancedSimulator{
		config: config,
		stats: &SimulationStats{
			StartTime:     time.Now(),
			ThreadsPerSub: make(map[int64]int),
		},
		reader: reader,
		writer: writer,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

func (s *EnhancedSimulator) Run(ctx context.Context) error {
	logrus.WithField("engine", s.config.EngineURL).Info("starting simulation")

	if err := s.checkHealth(ctx); err != nil {
		return err
	}
	if err := s.initialize(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	metricsCtx, stopMetrics := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.collectMetrics(metricsCtx)
	}()

	err := s.SimulateActivities(ctx)
	stopMetrics()
	wg.Wait()
	return err
}

func (s *EnhancedSimulator) checkHealth(ctx context.Context) error {
	status, _, err := s.makeRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("server unhealthy: status %d", status)
	}
	return nil
}

func (s *EnhancedSimulator) initialize(ctx context.Context) error {
	logrus.Infof("Phase 1: Creating %d users...", s.config.NumUsers)
	if err := s.createInitialUsers(ctx); err != nil {
		return fmt.Errorf("failed to create initial users: %w", err)
	}

	logrus.Infof("Phase 2: Creating %d subreddits...", s.config.NumSubreddits)
	if err := s.createSubreddits(ctx); err != nil {
		return fmt.Errorf("failed to create subreddits: %w", err)
	}

	return s.initializeZipf()
}

// initializeZipf prepares the subreddit picker. A single subreddit needs no
// distribution.
func (s *EnhancedSimulator) initializeZipf() error {
	if len(s.subreddits) < 2 {
		return nil
	}
	s.zipf = rand.NewZipf(s.rng, s.config.ZipfS, 1, uint64(len(s.subreddits)-1))
	if s.zipf == nil {
		return fmt.Errorf("invalid zipf parameter %.2f: must be greater than 1", s.config.ZipfS)
	}
	return nil
}

func (s *EnhancedSimulator) createInitialUsers(ctx context.Context) error {
	results := make(chan *SimulatedUser)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < s.workers(); w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for userNum := range jobs {
				payload := map[string]interface{}{
					"username": fmt.Sprintf("user_%d", userNum),
					"email":    fmt.Sprintf("user_%d@test.com", userNum),
				}
				var user SimulatedUser
				if err := s.create(ctx, "/users", payload, &user); err != nil {
					logrus.WithError(err).WithField("worker", workerID).Warn("failed to create user")
					continue
				}
				results <- &user
			}
		}(w)
	}

	go func() {
		defer close(jobs)
		for i := 0; i < s.config.NumUsers; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	for user := range results {
		s.users = append(s.users, user)
	}

	s.stats.mu.Lock()
	s.stats.UsersCreated = len(s.users)
	s.stats.mu.Unlock()

	if len(s.users) == 0 {
		return fmt.Errorf("no users were created")
	}
	logrus.Infof("Successfully created %d users", len(s.users))
	return ctx.Err()
}

func (s *EnhancedSimulator) createSubreddits(ctx context.Context) error {
	for i := 0; i < s.config.NumSubreddits; i++ {
		theme := s.getRandomTheme()
		payload := map[string]interface{}{
			"name":        fmt.Sprintf("%s_%d", theme, i),
			"description": fmt.Sprintf("A community for %s enthusiasts", theme),
		}

		var sub simulatedSubreddit
		if err := s.create(ctx, "/subreddits", payload, &sub); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logrus.WithError(err).Warn("failed to create subreddit")
			continue
		}
		s.subreddits = append(s.subreddits, &sub)
	}

	s.stats.mu.Lock()
	s.stats.SubredditsCreated = len(s.subreddits)
	s.stats.mu.Unlock()

	if len(s.subreddits) == 0 {
		return fmt.Errorf("no subreddits were created")
	}
	return nil
}

// Helper function to generate random subreddit themes
func (s *EnhancedSimulator) getRandomTheme() string {
	themes := []string{
		"gaming", "tech", "science", "music", "movies",
		"books", "sports", "food", "travel", "art",
		"photography", "fitness", "programming", "news", "memes",
		"history", "nature", "pets", "fashion", "diy",
	}
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return themes[s.rng.Intn(len(themes))]
}

func (s *EnhancedSimulator) workers() int {
	if s.config.Workers < 1 {
		return 1
	}
	return s.config.Workers
}

// create POSTs payload and decodes a 201 response into out.
func (s *EnhancedSimulator) create(ctx context.Context, endpoint string, payload, out interface{}) error {
	status, body, err := s.makeRequest(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("POST %s: unexpected status %d: %s", endpoint, status, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("POST %s: failed to parse response: %w", endpoint, err)
	}
	return nil
}

// makeRequest sends one request and returns the status and body. Only
// transport failures are errors; statuses are for the caller to judge.
func (s *EnhancedSimulator) makeRequest(ctx context.Context, method, endpoint string, data interface{}) (int, []byte, error) {
	var body io.Reader
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return 0, nil, err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.config.EngineURL+endpoint, body)
	if err != nil {
		return 0, nil, err
	}
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := s.writer
	if method == http.MethodGet {
		client = s.reader
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		s.recordRequestMetrics(start, false)
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	s.recordRequestMetrics(start, err == nil && resp.StatusCode < http.StatusInternalServerError)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func (s *EnhancedSimulator) recordRequestMetrics(start time.Time, ok bool) {
	s.stats.mu.Lock()
	defer s.stats.mu.Unlock()

	latency := time.Since(start)
	s.stats.TotalRequests++
	if ok {
		s.stats.SuccessRequests++
	} else {
		s.stats.FailedRequests++
	}

	totalLatency := s.stats.AverageLatency * time.Duration(s.stats.TotalRequests-1)
	s.stats.AverageLatency = (totalLatency + latency) / time.Duration(s.stats.TotalRequests)
}

func (s *EnhancedSimulator) collectMetrics(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m := s.GetMetrics()
			logrus.WithFields(logrus.Fields{
				"requests_per_sec": fmt.Sprintf("%.2f", m.RequestsPerSecond),
				"avg_latency":      m.AverageLatency.String(),
				"threads_created":  m.ThreadsCreated,
				"threads_deleted":  m.ThreadsDeleted,
				"failed_requests":  m.ErrorCount,
			}).Info("simulation progress")
		}
	}
}

// SimulationMetrics holds the metrics of the simulation
type SimulationMetrics struct {
	TotalUsers        int
	TotalSubreddits   int
	ThreadsCreated    int
	ThreadsDeleted    int
	RepeatDeletes404  int
	Violations        []string
	ThreadsPerSub     map[int64]int
	AverageLatency    time.Duration
	ErrorCount        int
	RequestsPerSecond float64
}

// GetMetrics returns the current simulation metrics
func (s *EnhancedSimulator) GetMetrics() SimulationMetrics {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	elapsed := time.Since(s.stats.StartTime)
	requestRate := float64(s.stats.TotalRequests) / elapsed.Seconds()

	perSub := make(map[int64]int, len(s.stats.ThreadsPerSub))
	for id, n := range s.stats.ThreadsPerSub {
		perSub[id] = n
	}

	return SimulationMetrics{
		TotalUsers:        s.stats.UsersCreated,
		TotalSubreddits:   s.stats.SubredditsCreated,
		ThreadsCreated:    s.stats.ThreadsCreated,
		ThreadsDeleted:    s.stats.ThreadsDeleted,
		RepeatDeletes404:  s.stats.RepeatDeletes404,
		Violations:        append([]string(nil), s.stats.Violations...),
		ThreadsPerSub:     perSub,
		AverageLatency:    s.stats.AverageLatency,
		ErrorCount:        int(s.stats.FailedRequests),
		RequestsPerSecond: requestRate,
	}
}
