package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/oakhall/clubboard/internal/board/service"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/internal/board/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

const (
	testInviteCode  = "open-sesame"
	testAdminSecret = "rosebud"
	testPassword    = "Abcdef1!"
)

func newTestRouter(t *testing.T) (*Router, store.Store) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rt := NewRouter("dev", "clubboard_session", time.Hour, st, logger)
	rt.AuthService = &service.AuthService{Store: st}
	rt.SignupService = &service.SignupService{Store: st, BcryptCost: 4}
	rt.MembershipService = &service.MembershipService{
		Store:       st,
		InviteCode:  testInviteCode,
		AdminSecret: testAdminSecret,
	}
	rt.SessionService = &service.SessionService{Store: st, TTL: time.Hour}
	rt.MessageService = &service.MessageService{Store: st}
	rt.ApplyRoutes()

	return rt, st
}

func doGet(rt *Router, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

func doPost(rt *Router, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, req)
	return rec
}

// sessionCookie pulls the session cookie out of a response, or nil.
func sessionCookie(rt *Router, rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == rt.cookieName && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}

// signUpUser registers a fresh user through the real endpoint and returns
// the signed-in session cookie.
func signUpUser(t *testing.T, rt *Router, email string) *http.Cookie {
	t.Helper()

	rec := doPost(rt, "/sign-up", url.Values{
		"email":           {email},
		"firstName":       {"Ada"},
		"lastName":        {"Lovelace"},
		"password":        {testPassword},
		"confirmPassword": {testPassword},
	}, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	cookie := sessionCookie(rt, rec)
	require.NotNil(t, cookie)
	return cookie
}

// joinClub upgrades the session's user to club member.
func joinClub(t *testing.T, rt *Router, cookie *http.Cookie) {
	t.Helper()

	rec := doPost(rt, "/join-club", url.Values{"clubInviteCode": {testInviteCode}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

// grantAdmin upgrades the session's user to admin.
func grantAdmin(t *testing.T, rt *Router, cookie *http.Cookie) {
	t.Helper()

	rec := doPost(rt, "/admin/grant", url.Values{"adminSecret": {testAdminSecret}}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))
}

func userByEmail(t *testing.T, st store.Store, email string) userFlags {
	t.Helper()

	user, err := st.Users().GetUserByEmail(context.Background(), email)
	require.NoError(t, err)
	return userFlags{IsClubMember: user.IsClubMember, IsAdmin: user.IsAdmin}
}

type userFlags struct {
	IsClubMember bool
	IsAdmin      bool
}

// mapValues builds url.Values from alternating key/value pairs.
func mapValues(pairs ...string) url.Values {
	form := url.Values{}
	for i := 0; i+1 < len(pairs); i += 2 {
		form.Set(pairs[i], pairs[i+1])
	}
	return form
}
