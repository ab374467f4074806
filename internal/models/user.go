package models

type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
}

// NewUser carries insert values. A nil field is bound as NULL and left for
// the store to reject.
type NewUser struct {
	Username *string
	Email    *string
}
