package service

import (
	"context"
	"errors"
	"time"

	"github.com/oakhall/clubboard/internal/board/domain"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/cryptox"
	"github.com/oakhall/clubboard/pkg/idx"
	"github.com/oakhall/clubboard/pkg/slogx"
)

// DefaultSessionTTL matches the original 30-day cookie lifetime.
const DefaultSessionTTL = 30 * 24 * time.Hour

// SessionService maps opaque cookie tokens to server-side session rows and
// resolves them to principals. The token itself is never stored; only its
// SHA-256 fingerprint is.
type SessionService struct {
	Store store.Store
	TTL   time.Duration
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL == 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// Issue creates a session row and returns the raw token for the cookie.
// userID may be empty for an anonymous session that only carries flash
// messages; serializing a principal stores its id and nothing else.
func (s *SessionService) Issue(ctx context.Context, userID string) (string, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", "error", err)
		return "", err
	}

	sess := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(s.ttl()),
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		log.Error("failed to create session", "error", err)
		return "", err
	}

	return token, nil
}

// Resolve deserializes a cookie token into its session and, when the session
// belongs to a user that still exists, the principal. A missing or expired
// session, or a session whose user id no longer resolves, yields a nil user
// and no error: the request simply proceeds unauthenticated. Resolving
// slides the expiry window forward.
func (s *SessionService) Resolve(ctx context.Context, token string) (domain.Session, *domain.User, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Session{}, nil, nil
	}

	sess, err := s.Store.Sessions().GetActiveSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, nil, nil
		}
		log.Error("failed to look up session", "error", err)
		return domain.Session{}, nil, err
	}

	// Sliding expiry: any resolved session stays alive another TTL.
	if err := s.Store.Sessions().TouchSession(ctx, sess.ID, time.Now().UTC().Add(s.ttl())); err != nil {
		log.Error("failed to touch session", "session_id", sess.ID, "error", err)
		return domain.Session{}, nil, err
	}

	if sess.UserID == "" {
		return sess, nil, nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Dangling user id: treat as unauthenticated, keep the session
			// for its flash messages.
			log.Warn("session references missing user", "session_id", sess.ID)
			return sess, nil, nil
		}
		log.Error("failed to resolve principal", "session_id", sess.ID, "error", err)
		return domain.Session{}, nil, err
	}

	return sess, &user, nil
}

// Rotate retires the session behind oldToken and issues a fresh one for
// userID in a single transaction, so authentication never leaves a window
// with both tokens (or neither) valid. oldToken may be empty or stale.
func (s *SessionService) Rotate(ctx context.Context, oldToken, userID string) (string, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", "error", err)
		return "", err
	}

	sess := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(token),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(s.ttl()),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if oldToken != "" {
			old, err := tx.Sessions().GetActiveSessionByTokenHash(ctx, cryptox.FingerprintToken(oldToken))
			switch {
			case err == nil:
				if err := tx.Sessions().DeleteSession(ctx, old.ID); err != nil {
					return err
				}
			case !errors.Is(err, store.ErrNotFound):
				return err
			}
		}
		return tx.Sessions().CreateSession(ctx, sess)
	})
	if err != nil {
		log.Error("failed to rotate session", "error", err)
		return "", err
	}

	return token, nil
}

// Destroy removes the session behind token. Unknown tokens are a no-op.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	sess, err := s.Store.Sessions().GetActiveSessionByTokenHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	return s.Store.Sessions().DeleteSession(ctx, sess.ID)
}

// Flash appends messages to the session's pending flash list.
func (s *SessionService) Flash(ctx context.Context, sess domain.Session, messages ...string) error {
	if len(messages) == 0 {
		return nil
	}
	return s.Store.Sessions().UpdateSessionFlash(ctx, sess.ID, append(sess.Flash, messages...))
}

// DrainFlash returns the pending flash messages and clears them.
func (s *SessionService) DrainFlash(ctx context.Context, sess domain.Session) ([]string, error) {
	if len(sess.Flash) == 0 {
		return nil, nil
	}
	if err := s.Store.Sessions().UpdateSessionFlash(ctx, sess.ID, nil); err != nil {
		return nil, err
	}
	return sess.Flash, nil
}
