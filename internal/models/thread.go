package models

// Thread is a post inside a subreddit. SubredditID and AuthorID are foreign
// keys checked by the store, not by the API.
type Thread struct {
	ID          int64  `json:"id" db:"id"`
	SubredditID int64  `json:"subreddit_id" db:"subreddit_id"`
	AuthorID    int64  `json:"author_id" db:"author_id"`
	Title       string `json:"title" db:"title"`
	Content     string `json:"content" db:"content"`
}

type NewThread struct {
	SubredditID int64
	AuthorID    *int64
	Title       *string
	Content     *string
}
