package http

import (
	"net/http"

	"github.com/oakhall/clubboard/pkg/slogx"
)

// sessionMiddleware resolves the session cookie exactly once per request and
// attaches the result to the context. A missing, expired or unknown token is
// treated as no session; the stale cookie is cleared so the browser stops
// sending it.
func (rt *Router) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs := &RequestSession{}

		if cookie, err := r.Cookie(rt.cookieName); err == nil && cookie.Value != "" {
			sess, user, err := rt.SessionService.Resolve(r.Context(), cookie.Value)
			if err != nil {
				slogx.FromContext(r.Context()).Error("failed to resolve session", "error", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if sess.ID == "" {
				rt.clearSessionCookie(w)
			} else {
				rs.Session = sess
				rs.User = user
			}
		}

		next.ServeHTTP(w, r.WithContext(withRequestSession(r.Context(), rs)))
	})
}

func (rt *Router) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     rt.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(rt.sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   rt.env != "dev",
		SameSite: http.SameSiteLaxMode,
	})
}

func (rt *Router) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     rt.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   rt.env != "dev",
		SameSite: http.SameSiteLaxMode,
	})
}

// flash queues messages for the next rendered page. Requests without a
// session get an anonymous one so that, for example, a failed sign-in can
// still explain itself after the redirect.
func (rt *Router) flash(w http.ResponseWriter, r *http.Request, messages ...string) error {
	if len(messages) == 0 {
		return nil
	}

	rs := requestSessionFrom(r.Context())
	if rs.HasSession() {
		return rt.SessionService.Flash(r.Context(), rs.Session, messages...)
	}

	token, err := rt.SessionService.Issue(r.Context(), "")
	if err != nil {
		return err
	}
	sess, _, err := rt.SessionService.Resolve(r.Context(), token)
	if err != nil {
		return err
	}
	if err := rt.SessionService.Flash(r.Context(), sess, messages...); err != nil {
		return err
	}
	rt.setSessionCookie(w, token)
	return nil
}
