package store

import (
	"context"
	"errors"
	"time"

	"github.com/oakhall/clubboard/internal/board/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. Sub-repositories are exposed as methods to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Messages() Messages
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks up a user by exact email, used during sign-in.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// EmailExists reports whether a user row holds the email. Advisory only:
	// the UNIQUE constraint on the insert is the real invariant.
	EmailExists(ctx context.Context, email string) (bool, error)

	// CreateUser inserts a new user (id provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is already taken.
	CreateUser(ctx context.Context, u domain.User) error

	// SetClubMember flips is_club_member to true. Idempotent.
	SetClubMember(ctx context.Context, userID string) error

	// SetAdmin sets the is_admin flag and bumps updated_at.
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Messages interface {
	// CreateMessage inserts a new message.
	CreateMessage(ctx context.Context, m domain.Message) error

	// GetMessageByID returns a single message.
	GetMessageByID(ctx context.Context, id string) (domain.Message, error)

	// ListMessagesWithAuthor returns every message joined with its author,
	// newest timestamp first.
	ListMessagesWithAuthor(ctx context.Context) ([]domain.MessageWithAuthor, error)

	// DeleteMessage removes a message by id.
	DeleteMessage(ctx context.Context, id string) error

	// CountMessages returns the number of stored messages.
	CountMessages(ctx context.Context) (int, error)
}

type Sessions interface {
	// CreateSession stores a new session row (token_hash is the SHA-256
	// fingerprint of the opaque cookie token).
	CreateSession(ctx context.Context, s domain.Session) error

	// GetActiveSessionByTokenHash returns a not-expired session by hash.
	GetActiveSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// TouchSession extends a session's expiry (sliding 30-day window).
	TouchSession(ctx context.Context, id string, expiresAt time.Time) error

	// UpdateSessionFlash replaces the pending flash message list.
	UpdateSessionFlash(ctx context.Context, id string, flash []string) error

	// DeleteSession removes a session by id (sign-out).
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
