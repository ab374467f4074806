package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gator-threads/internal/logger"
	"gator-threads/simulator"

	"github.com/sirupsen/logrus"
)

func main() {
	config := simulator.DefaultSimConfig()

	flag.StringVar(&config.EngineURL, "url", config.EngineURL, "base URL of the API server")
	flag.IntVar(&config.NumUsers, "users", config.NumUsers, "number of users to create")
	flag.IntVar(&config.NumSubreddits, "subreddits", config.NumSubreddits, "number of subreddits to create")
	flag.IntVar(&config.NumThreads, "threads", config.NumThreads, "number of threads to create")
	flag.Float64Var(&config.DeleteRatio, "delete-ratio", config.DeleteRatio, "share of threads to delete")
	flag.IntVar(&config.Workers, "workers", config.Workers, "concurrent workers")
	flag.Float64Var(&config.ZipfS, "zipf", config.ZipfS, "zipf skew of threads over subreddits (> 1)")
	flag.DurationVar(&config.RequestTimeout, "request-timeout", config.RequestTimeout, "per-request timeout")
	flag.IntVar(&config.MaxRetries, "retries", config.MaxRetries, "GET retries on transport errors and 5xx")
	flag.Int64Var(&config.Seed, "seed", config.Seed, "random seed")
	duration := flag.Duration("max-duration", 10*time.Minute, "stop the simulation after this long")
	flag.Parse()

	if err := logger.Setup("info", "text"); err != nil {
		logrus.Fatal(err)
	}

	logrus.WithFields(logrus.Fields{
		"engine":       config.EngineURL,
		"users":        config.NumUsers,
		"subreddits":   config.NumSubreddits,
		"threads":      config.NumThreads,
		"delete_ratio": config.DeleteRatio,
		"workers":      config.Workers,
		"zipf":         config.ZipfS,
	}).Info("Starting simulation with configuration")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *duration)
	defer cancel()

	sim := simulator.NewEnhancedSimulator(config)
	if err := sim.Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Simulation failed")
	}

	metrics := sim.GetMetrics()
	logrus.WithFields(logrus.Fields{
		"users":              metrics.TotalUsers,
		"subreddits":         metrics.TotalSubreddits,
		"threads_created":    metrics.ThreadsCreated,
		"threads_deleted":    metrics.ThreadsDeleted,
		"repeat_deletes_404": metrics.RepeatDeletes404,
		"avg_latency":        metrics.AverageLatency.String(),
		"requests_per_sec":   metrics.RequestsPerSecond,
		"errors":             metrics.ErrorCount,
	}).Info("Simulation completed")
	for id, n := range metrics.ThreadsPerSub {
		logrus.WithFields(logrus.Fields{"subreddit_id": id, "threads": n}).Info("subreddit thread count")
	}

	if len(metrics.Violations) > 0 {
		logrus.WithField("violations", len(metrics.Violations)).Error("simulation found contract violations")
		os.Exit(1)
	}
}
