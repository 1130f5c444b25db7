package service

import (
	"context"
	"testing"

	"github.com/oakhall/clubboard/internal/board/domain"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/internal/board/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

// testBcryptCost keeps hashing fast in tests.
const testBcryptCost = 4

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func mustSignUp(t *testing.T, st store.Store, email string) domain.User {
	t.Helper()

	svc := &SignupService{Store: st, BcryptCost: testBcryptCost}
	user, err := svc.SignUp(context.Background(), SignUpInput{
		Email:           email,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Password:        "Abcdef1!",
		ConfirmPassword: "Abcdef1!",
	})
	require.NoError(t, err)
	return user
}
