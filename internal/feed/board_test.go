package feed_test

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"gator-threads/internal/feed"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubFetcher struct {
	posts []feed.Post
	err   error
	calls int
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) ([]feed.Post, error) {
	s.calls++
	return s.posts, s.err
}

var hrefPattern = regexp.MustCompile(`href="([^"]+)"`)

var _ = Describe("Board", func() {
	var fetcher *stubFetcher

	BeforeEach(func() {
		fetcher = &stubFetcher{}
	})

	It("starts idle with an empty container", func() {
		board := feed.NewBoard("golang", fetcher, "https://www.reddit.com")
		Expect(board.State()).To(Equal(feed.StateIdle))
		Expect(board.Items()).To(BeEmpty())
		Expect(board.Topic()).To(Equal("golang"))
	})

	It("renders exactly one placeholder when there are no posts", func() {
		board := feed.NewBoard("quiet", fetcher, "https://www.reddit.com")
		Expect(board.Load(context.Background())).To(Succeed())

		items := string(board.Items())
		Expect(board.State()).To(Equal(feed.StateRendered))
		Expect(strings.Count(items, "<li")).To(Equal(1))
		Expect(items).To(ContainSubstring(feed.EmptyPlaceholder))
	})

	It("renders one item per post with title, author and an absolute link", func() {
		fetcher.posts = []feed.Post{
			{Title: "First", Author: "alice", Permalink: "/r/golang/comments/1/first/"},
			{Title: "Second", Author: "bob", Permalink: "r/golang/comments/2/second/"},
			{Title: "Third", Author: "carol", Permalink: "https://old.reddit.com/r/golang/comments/3/third/"},
		}
		board := feed.NewBoard("golang", fetcher, "https://www.reddit.com/")
		Expect(board.Load(context.Background())).To(Succeed())

		items := string(board.Items())
		Expect(strings.Count(items, "<li")).To(Equal(3))
		Expect(items).NotTo(ContainSubstring(feed.EmptyPlaceholder))
		for _, p := range fetcher.posts {
			Expect(items).To(ContainSubstring(p.Title))
			Expect(items).To(ContainSubstring("u/" + p.Author))
		}

		matches := hrefPattern.FindAllStringSubmatch(items, -1)
		Expect(matches).To(HaveLen(3))
		for _, m := range matches {
			link, err := url.Parse(m[1])
			Expect(err).NotTo(HaveOccurred())
			Expect(link.IsAbs()).To(BeTrue())
			Expect(link.Scheme).To(Equal("https"))
		}
		Expect(matches[0][1]).To(Equal("https://www.reddit.com/r/golang/comments/1/first/"))
		Expect(matches[1][1]).To(Equal("https://www.reddit.com/r/golang/comments/2/second/"))
		Expect(matches[2][1]).To(Equal("https://old.reddit.com/r/golang/comments/3/third/"))
	})

	It("escapes markup in titles", func() {
		fetcher.posts = []feed.Post{{Title: "<script>alert(1)</script>", Author: "mallory", Permalink: "/x"}}
		board := feed.NewBoard("golang", fetcher, "https://www.reddit.com")
		Expect(board.Load(context.Background())).To(Succeed())
		Expect(string(board.Items())).NotTo(ContainSubstring("<script>"))
	})

	It("keeps the previous contents when a load fails", func() {
		fetcher.posts = []feed.Post{{Title: "Kept", Author: "alice", Permalink: "/r/golang/1"}}
		board := feed.NewBoard("golang", fetcher, "https://www.reddit.com")
		Expect(board.Load(context.Background())).To(Succeed())
		before := board.Items()

		fetcher.err = errors.New("feed returned status 503")
		Expect(board.Load(context.Background())).To(MatchError(ContainSubstring("503")))
		Expect(board.State()).To(Equal(feed.StateFailed))
		Expect(board.Items()).To(Equal(before))
	})

	It("renders the page around the list container", func() {
		fetcher.posts = []feed.Post{{Title: "Hello", Author: "alice", Permalink: "/r/golang/1"}}
		board := feed.NewBoard("golang", fetcher, "https://www.reddit.com")
		Expect(board.Load(context.Background())).To(Succeed())

		page, err := board.Page()
		Expect(err).NotTo(HaveOccurred())
		Expect(string(page)).To(ContainSubstring(`<ul id="threads">`))
		Expect(string(page)).To(ContainSubstring("<title>r/golang</title>"))
		Expect(string(page)).To(ContainSubstring("Hello"))
	})
})

var _ = Describe("Boards", func() {
	It("returns the same board for the same topic", func() {
		boards := feed.NewBoards(&stubFetcher{}, "https://www.reddit.com", time.Minute)
		first := boards.Board("golang")
		Expect(boards.Board("golang")).To(BeIdenticalTo(first))
		Expect(boards.Board("rust")).NotTo(BeIdenticalTo(first))
		Expect(boards.Len()).To(Equal(2))
	})

	It("drops boards after the idle TTL", func() {
		boards := feed.NewBoards(&stubFetcher{}, "https://www.reddit.com", 20*time.Millisecond)
		first := boards.Board("golang")
		Eventually(func() *feed.Board {
			return boards.Board("golang")
		}, time.Second, 30*time.Millisecond).ShouldNot(BeIdenticalTo(first))
	})
})

var _ = Describe("State", func() {
	DescribeTable("String",
		func(state feed.State, want string) {
			Expect(state.String()).To(Equal(want))
		},
		Entry("idle", feed.StateIdle, "idle"),
		Entry("fetching", feed.StateFetching, "fetching"),
		Entry("rendered", feed.StateRendered, "rendered"),
		Entry("failed", feed.StateFailed, "failed"),
		Entry("unknown", feed.State(42), "unknown"),
	)
})
