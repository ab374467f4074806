package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"gator-threads/internal/feed"
	"gator-threads/internal/utils"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const golangListing = `{
  "kind": "Listing",
  "data": {
    "children": [
      {"kind": "t3", "data": {"title": "Go 1.25 is released", "author": "gopher", "permalink": "/r/golang/comments/abc123/go_125_is_released/", "score": 42}},
      {"kind": "t3", "data": {"title": "Generics tips", "author": "rob", "permalink": "/r/golang/comments/def456/generics_tips/"}}
    ]
  }
}`

var _ = Describe("Client", func() {
	var (
		server    *httptest.Server
		client    *feed.Client
		mu        sync.Mutex
		userAgent string
		hits      int
	)

	requests := func() (int, string) {
		mu.Lock()
		defer mu.Unlock()
		return hits, userAgent
	}

	BeforeEach(func() {
		mu.Lock()
		hits, userAgent = 0, ""
		mu.Unlock()
		mux := http.NewServeMux()
		mux.HandleFunc("/r/golang.json", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits++
			userAgent = r.Header.Get("User-Agent")
			mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(golangListing))
		})
		mux.HandleFunc("/r/empty.json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": {"children": []}}`))
		})
		mux.HandleFunc("/r/broken.json", func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			hits++
			mu.Unlock()
			w.WriteHeader(http.StatusInternalServerError)
		})
		mux.HandleFunc("/r/garbled.json", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [`))
		})
		server = httptest.NewServer(mux)

		client = feed.NewClient(feed.ClientConfig{
			BaseURL:   server.URL + "/",
			UserAgent: "gator-threads-test",
			Timeout:   2 * time.Second,
		})
	})

	AfterEach(func() {
		server.Close()
	})

	It("builds the listing URL from the topic", func() {
		Expect(client.ListingURL("golang")).To(Equal(server.URL + "/r/golang.json"))
		Expect(client.ListingURL("a b")).To(Equal(server.URL + "/r/a%20b.json"))
	})

	It("extracts title, author and permalink of every child", func() {
		posts, err := client.Fetch(context.Background(), "golang")
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(Equal([]feed.Post{
			{Title: "Go 1.25 is released", Author: "gopher", Permalink: "/r/golang/comments/abc123/go_125_is_released/"},
			{Title: "Generics tips", Author: "rob", Permalink: "/r/golang/comments/def456/generics_tips/"},
		}))
		_, ua := requests()
		Expect(ua).To(Equal("gator-threads-test"))
	})

	It("returns an empty list for a topic without posts", func() {
		posts, err := client.Fetch(context.Background(), "empty")
		Expect(err).NotTo(HaveOccurred())
		Expect(posts).To(BeEmpty())
	})

	It("fails on a non-2xx status without retrying", func() {
		_, err := client.Fetch(context.Background(), "broken")
		Expect(err).To(HaveOccurred())
		Expect(utils.IsErrorCode(err, utils.ErrUpstream)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("status 500"))
		n, _ := requests()
		Expect(n).To(Equal(1))
	})

	It("fails on an unknown topic", func() {
		_, err := client.Fetch(context.Background(), "missing")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("status 404"))
	})

	It("fails on a body that is not a listing", func() {
		_, err := client.Fetch(context.Background(), "garbled")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("failed to decode feed"))
	})

	It("fails on a transport error", func() {
		server.Close()
		_, err := client.Fetch(context.Background(), "golang")
		Expect(err).To(HaveOccurred())
		Expect(utils.IsErrorCode(err, utils.ErrUpstream)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("feed request failed"))
	})
})
