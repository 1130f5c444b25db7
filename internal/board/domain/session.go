package domain

import "time"

// Session is a server-side session row. The id held in the client cookie is
// opaque; only its SHA-256 fingerprint is stored here.
type Session struct {
	ID        string
	TokenHash string
	UserID    string // empty for anonymous sessions that only carry flash

	Flash     []string // pending flash messages, drained on next render
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
