package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gator-threads/internal/config"
	"gator-threads/internal/feed"
	"gator-threads/internal/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	defaults := config.DefaultFeedConfig()

	topic := flag.String("topic", "golang", "subreddit to render")
	out := flag.String("out", "", "write the page to this file instead of stdout")
	baseURL := flag.String("base-url", defaults.BaseURL, "feed host")
	userAgent := flag.String("user-agent", defaults.UserAgent, "User-Agent header for the feed request")
	timeout := flag.Duration("timeout", defaults.Timeout, "request timeout")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	if err := logger.Setup(*logLevel, "text"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logrus.SetOutput(os.Stderr)

	client := feed.NewClient(feed.ClientConfig{
		BaseURL:   *baseURL,
		UserAgent: *userAgent,
		Timeout:   *timeout,
	})
	board := feed.NewBoard(*topic, client, client.BaseURL())

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+time.Second)
	defer cancel()

	// The page is written either way; a failed load leaves the empty container.
	loadErr := board.Load(ctx)

	page, err := board.Page()
	if err != nil {
		logrus.WithError(err).Fatal("failed to render page")
	}

	if *out == "" {
		os.Stdout.Write(page)
	} else if err := os.WriteFile(*out, page, 0o644); err != nil {
		logrus.WithError(err).Fatal("failed to write page")
	}

	if loadErr != nil {
		os.Exit(1)
	}
	logrus.WithFields(logrus.Fields{"topic": *topic, "state": board.State()}).Info("feed rendered")
}
