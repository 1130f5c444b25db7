package domain

import "time"

type Message struct {
	ID        string
	Title     string // HTML-escaped at input time
	Content   string // HTML-escaped at input time
	Timestamp time.Time
	AuthorID  string
}

// MessageWithAuthor is a message joined with its author's full user record,
// as the board page displays them.
type MessageWithAuthor struct {
	Message
	Author User
}
