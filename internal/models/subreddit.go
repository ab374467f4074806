package models

type Subreddit struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

type NewSubreddit struct {
	Name        *string
	Description *string
}
