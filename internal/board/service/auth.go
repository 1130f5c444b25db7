package service

import (
	"context"
	"errors"

	"github.com/oakhall/clubboard/internal/board/domain"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/cryptox"
	"github.com/oakhall/clubboard/pkg/slogx"
)

// ErrInvalidCredentials is returned for both an unknown email and a wrong
// password. Callers must show MsgInvalidCredentials for either case so the
// response never reveals whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// MsgInvalidCredentials is the single externally visible sign-in failure
// message.
const MsgInvalidCredentials = "Incorrect e-mail or password."

// AuthService verifies email+password pairs against the user store.
type AuthService struct {
	Store store.Store
}

// Authenticate looks the user up by exact email and verifies the plaintext
// against the stored digest. On success the full user record is the
// principal.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("sign-in attempt for unknown email")
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to look up user", "error", err)
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("sign-in attempt with wrong password", "user_id", user.ID)
			return domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", "user_id", user.ID, "error", err)
		return domain.User{}, err
	}

	return user, nil
}
