package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/oakhall/clubboard/internal/board/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	flash, err := encodeFlash(s.Flash)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token_hash, user_id, flash, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TokenHash, mapStringNull(s.UserID), flash, s.ExpiresAt, now, now,
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetActiveSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	var (
		s      domain.Session
		userID sql.NullString
		flash  string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, user_id, flash, expires_at, created_at, updated_at
		FROM sessions
		WHERE token_hash = ? AND expires_at > ?`,
		hash, time.Now().UTC()).
		Scan(&s.ID, &s.TokenHash, &userID, &flash, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.UserID = userID.String
	if err := json.Unmarshal([]byte(flash), &s.Flash); err != nil {
		return domain.Session{}, err
	}
	return s, nil
}

func (r *sessionsRepo) TouchSession(ctx context.Context, id string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET expires_at = ?, updated_at = ?
		WHERE id = ?`,
		expiresAt.UTC(), time.Now().UTC(), id,
	)
	return err
}

func (r *sessionsRepo) UpdateSessionFlash(ctx context.Context, id string, flash []string) error {
	encoded, err := encodeFlash(flash)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		UPDATE sessions SET flash = ?, updated_at = ?
		WHERE id = ?`,
		encoded, time.Now().UTC(), id,
	)
	return err
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`, time.Now().UTC())
	return err
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func encodeFlash(flash []string) (string, error) {
	if flash == nil {
		flash = []string{}
	}
	b, err := json.Marshal(flash)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
