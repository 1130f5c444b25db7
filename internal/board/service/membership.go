package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/slogx"
)

var (
	ErrInvalidInviteCode   = errors.New("invalid invite code")
	ErrAdminSecretRequired = errors.New("admin secret required")
	ErrInvalidAdminSecret  = errors.New("invalid admin secret")
)

// Membership messages shown to users.
const (
	MsgInvalidInviteCode   = "Invalid invite code."
	MsgAdminSecretRequired = "Admin code is required."
	MsgInvalidAdminSecret  = "Admin code is invalid."
)

// MembershipService flips the membership and admin flags after checking the
// submitted value against the server-held shared secret. Secrets come from
// configuration, never from code.
type MembershipService struct {
	Store store.Store

	InviteCode  string
	AdminSecret string
}

// JoinClub grants club membership when code matches the configured invite
// code. Granting is idempotent: a member re-submitting a valid code is a
// no-op.
func (s *MembershipService) JoinClub(ctx context.Context, userID, code string) error {
	log := slogx.FromContext(ctx)

	if !secretEqual(code, s.InviteCode) {
		log.Warn("join-club attempt with wrong invite code", "user_id", userID)
		return ErrInvalidInviteCode
	}

	if err := s.Store.Users().SetClubMember(ctx, userID); err != nil {
		log.Error("failed to set club membership", "user_id", userID, "error", err)
		return err
	}

	log.Info("user joined the club", "user_id", userID)
	return nil
}

// SetAdmin grants or revokes the admin flag when secret matches the
// configured admin secret.
func (s *MembershipService) SetAdmin(ctx context.Context, userID, secret string, isAdmin bool) error {
	log := slogx.FromContext(ctx)

	if secret == "" {
		return ErrAdminSecretRequired
	}
	if !secretEqual(secret, s.AdminSecret) {
		log.Warn("admin toggle attempt with wrong secret", "user_id", userID)
		return ErrInvalidAdminSecret
	}

	if err := s.Store.Users().SetAdmin(ctx, userID, isAdmin); err != nil {
		log.Error("failed to set admin flag", "user_id", userID, "error", err)
		return err
	}

	log.Info("admin flag updated", "user_id", userID, "is_admin", isAdmin)
	return nil
}

// secretEqual compares a submitted value against a configured secret in
// constant time. An unset secret never matches anything.
func secretEqual(submitted, configured string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(submitted), []byte(configured)) == 1
}
