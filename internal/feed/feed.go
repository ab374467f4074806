// Package feed fetches a subreddit's public JSON listing and renders it as an
// HTML list of threads.
package feed

import "context"

// Post is the summary of one listing entry that gets rendered.
type Post struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Permalink string `json:"permalink"`
}

// listing mirrors the parts of the Reddit listing document we read:
// {"data": {"children": [{"data": {...}}]}}
type listing struct {
	Data struct {
		Children []struct {
			Data Post `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// Fetcher retrieves the posts for a topic.
type Fetcher interface {
	Fetch(ctx context.Context, topic string) ([]Post, error)
}
