package http

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/oakhall/clubboard/internal/board/service"
	"github.com/stretchr/testify/require"
)

func TestSignUpSignsTheUserIn(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")

	rec := doGet(rt, "/", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Sign out (Ada)")

	flags := userByEmail(t, st, "ada@x.com")
	require.False(t, flags.IsClubMember)
	require.False(t, flags.IsAdmin)
}

func TestSignUpValidationFlashesAndPrefills(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)

	rec := doPost(rt, "/sign-up", mapValues(
		"email", "ada@x.com",
		"firstName", "Ada",
		"password", "weak",
		"confirmPassword", "different",
	), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	target := rec.Header().Get("Location")
	require.Contains(t, target, "/sign-up?")
	require.Contains(t, target, "email=ada%40x.com")
	require.Contains(t, target, "firstName=Ada")
	require.NotContains(t, target, "weak")
	require.NotContains(t, target, "different")

	// The anonymous session created for the flash rides along.
	cookie := sessionCookie(rt, rec)
	require.NotNil(t, cookie)

	rec = doGet(rt, target, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, service.MsgFieldEmpty)
	require.Contains(t, body, service.MsgWeakPassword)
	require.Contains(t, body, service.MsgPasswordConfirm)
	require.Contains(t, body, `value="ada@x.com"`)

	// Flash messages show once, then drain.
	rec = doGet(rt, target, cookie)
	require.NotContains(t, rec.Body.String(), service.MsgWeakPassword)
}

func TestSignInWrongPasswordFlashesGenericMessage(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	signUpUser(t, rt, "ada@x.com")

	rec := doPost(rt, "/sign-in", mapValues("email", "ada@x.com", "password", "Wrong999"), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	target := rec.Header().Get("Location")
	require.Contains(t, target, "/sign-in?")
	require.Contains(t, target, "email=ada%40x.com")
	require.NotContains(t, target, "Wrong999")

	cookie := sessionCookie(rt, rec)
	require.NotNil(t, cookie)

	rec = doGet(rt, target, cookie)
	require.Contains(t, rec.Body.String(), service.MsgInvalidCredentials)
}

func TestSignInRejectsMalformedEmail(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)

	rec := doPost(rt, "/sign-in", mapValues("email", "not-an-email", "password", testPassword), nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	cookie := sessionCookie(rt, rec)
	require.NotNil(t, cookie)

	rec = doGet(rt, rec.Header().Get("Location"), cookie)
	require.Contains(t, rec.Body.String(), service.MsgInvalidEmail)
}

func TestSignInHonorsSafeRedirectTo(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	signUpUser(t, rt, "ada@x.com")

	form := mapValues("email", "ada@x.com", "password", testPassword)
	form.Set(redirectToParam, "/messages")
	rec := doPost(rt, "/sign-in", form, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/messages", rec.Header().Get("Location"))
}

func TestSignInIgnoresUnsafeRedirectTo(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	signUpUser(t, rt, "ada@x.com")

	form := mapValues("email", "ada@x.com", "password", testPassword)
	form.Set(redirectToParam, "https://evil.example.com/")
	rec := doPost(rt, "/sign-in", form, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
}

func TestSignOutEndsTheSession(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")

	rec := doGet(rt, "/sign-out", cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == rt.cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	require.True(t, cleared)

	// The old token is dead server-side even if the browser keeps it.
	rec = doGet(rt, "/", cookie)
	require.Contains(t, rec.Body.String(), "Sign in")
	require.NotContains(t, rec.Body.String(), "Sign out (Ada)")
}

func TestJoinClubWithInvalidCode(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")

	rec := doPost(rt, "/join-club", mapValues("clubInviteCode", "guess"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/join-club", rec.Header().Get("Location"))

	rec = doGet(rt, "/join-club", cookie)
	require.Contains(t, rec.Body.String(), service.MsgInvalidInviteCode)

	require.False(t, userByEmail(t, st, "ada@x.com").IsClubMember)
}

func TestJoinClubWithValidCode(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")

	joinClub(t, rt, cookie)
	require.True(t, userByEmail(t, st, "ada@x.com").IsClubMember)

	// Re-joining is a quiet no-op.
	rec := doPost(rt, "/join-club", mapValues("clubInviteCode", testInviteCode), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/join-club", rec.Header().Get("Location"))
}

func TestAdminGrantAndRevoke(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")

	rec := doPost(rt, "/admin/grant", mapValues("adminSecret", "guess"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))
	require.False(t, userByEmail(t, st, "ada@x.com").IsAdmin)

	rec = doGet(rt, "/admin", cookie)
	require.Contains(t, rec.Body.String(), service.MsgInvalidAdminSecret)

	grantAdmin(t, rt, cookie)
	require.True(t, userByEmail(t, st, "ada@x.com").IsAdmin)

	rec = doPost(rt, "/admin/revoke", mapValues("adminSecret", testAdminSecret), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.False(t, userByEmail(t, st, "ada@x.com").IsAdmin)
}

func TestAdminGrantWithoutCode(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")

	rec := doPost(rt, "/admin/grant", url.Values{}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin", rec.Header().Get("Location"))

	rec = doGet(rt, "/admin", cookie)
	require.Contains(t, rec.Body.String(), service.MsgAdminSecretRequired)
	require.False(t, userByEmail(t, st, "ada@x.com").IsAdmin)
}

func TestPostMessageAndPublicListing(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")
	joinClub(t, rt, cookie)

	rec := doPost(rt, "/messages/new", mapValues(
		"title", "Hello <b>board</b>",
		"content", "First post",
	), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))

	// Members see the author; markup in the title stays inert.
	rec = doGet(rt, "/messages", cookie)
	body := rec.Body.String()
	require.Contains(t, body, "Hello")
	require.NotContains(t, body, "<b>board</b>")
	require.Contains(t, body, "Ada Lovelace")

	// Anonymous readers see the message but not who wrote it.
	rec = doGet(rt, "/messages", nil)
	body = rec.Body.String()
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, body, "First post")
	require.NotContains(t, body, "Ada Lovelace")
	require.Contains(t, body, "A club member")
}

func TestPostMessageWithoutTitleFlashes(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")
	joinClub(t, rt, cookie)

	rec := doPost(rt, "/messages/new", mapValues("content", "no title"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Contains(t, rec.Header().Get("Location"), "/messages/new?")

	rec = doGet(rt, rec.Header().Get("Location"), cookie)
	require.Contains(t, rec.Body.String(), service.MsgTitleRequired)

	count, err := st.Messages().CountMessages(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestAdminDeletesMessage(t *testing.T) {
	t.Parallel()

	rt, st := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")
	joinClub(t, rt, cookie)
	grantAdmin(t, rt, cookie)

	rec := doPost(rt, "/messages/new", mapValues("title", "Doomed"), cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	messages, err := st.Messages().ListMessagesWithAuthor(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 1)

	rec = doGet(rt, "/messages/delete?id="+messages[0].ID, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/messages", rec.Header().Get("Location"))

	count, err := st.Messages().CountMessages(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestDeleteMessageRejectsBadIDs(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)
	cookie := signUpUser(t, rt, "ada@x.com")
	grantAdmin(t, rt, cookie)

	rec := doGet(rt, "/messages/delete", cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doGet(rt, "/messages/delete?id=not-a-ulid", cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	rt, _ := newTestRouter(t)

	rec := doGet(rt, "/livez", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = doGet(rt, "/readyz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"database":"ok"`)
}
