package service

import (
	"context"
	"errors"

	"github.com/oakhall/clubboard/internal/board/domain"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/cryptox"
	"github.com/oakhall/clubboard/pkg/idx"
	"github.com/oakhall/clubboard/pkg/slogx"
)

// SignupService registers new users.
type SignupService struct {
	Store store.Store
	// BcryptCost is the hashing work factor from configuration.
	BcryptCost int
}

type SignUpInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// SignUp validates the submission, hashes the password and creates the user.
// Every validator runs; a Violations error carries the full list. New users
// start with is_club_member and is_admin both false.
//
// The EmailExists pre-check is advisory: the UNIQUE constraint on the insert
// is what actually enforces uniqueness, and losing the race surfaces as the
// same "already in use" violation.
func (s *SignupService) SignUp(ctx context.Context, in SignUpInput) (domain.User, error) {
	log := slogx.FromContext(ctx)

	var v Violations

	email := requireText(&v, "email", in.Email)
	firstName := requireText(&v, "firstName", in.FirstName)
	lastName := requireText(&v, "lastName", in.LastName)

	if email != "" && !validEmailAddress(email) {
		v.add("email", MsgInvalidEmail)
	} else if email != "" {
		used, err := s.Store.Users().EmailExists(ctx, email)
		if err != nil {
			log.Error("failed to check email availability", "error", err)
			return domain.User{}, err
		}
		if used {
			v.add("email", MsgEmailInUse)
		}
	}

	if in.Password == "" {
		v.add("password", MsgFieldEmpty)
	} else if len(in.Password) > maxPasswordLength {
		v.add("password", MsgPasswordTooLong)
	} else if !strongPassword(in.Password) {
		v.add("password", MsgWeakPassword)
	}
	if in.ConfirmPassword != in.Password {
		v.add("confirmPassword", MsgPasswordConfirm)
	}

	if len(v) > 0 {
		return domain.User{}, v
	}

	hash, err := cryptox.HashPassword(in.Password, s.BcryptCost)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost the race between the advisory check and the insert.
			return domain.User{}, Violations{{Field: "email", Message: MsgEmailInUse}}
		}
		log.Error("failed to create user", "error", err)
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}
