package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	st := newTestStore(t)
	user := mustSignUp(t, st, "ada@x.com")
	svc := &AuthService{Store: st}

	t.Run("valid credentials return the full user record", func(t *testing.T) {
		principal, err := svc.Authenticate(ctx, "ada@x.com", "Abcdef1!")
		require.NoError(t, err)
		require.Equal(t, user.ID, principal.ID)
		require.Equal(t, "Ada", principal.FirstName)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		_, errUnknown := svc.Authenticate(ctx, "nobody@x.com", "Abcdef1!")
		_, errWrong := svc.Authenticate(ctx, "ada@x.com", "Wrong-pass1")

		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		// The externally visible message must be byte-identical.
		require.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("email lookup is exact", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, "ADA@x.com", "Abcdef1!")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
