package http

import "net/http"

func (rt *Router) GetSignOut(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(rt.cookieName); err == nil && cookie.Value != "" {
		if err := rt.SessionService.Destroy(r.Context(), cookie.Value); err != nil {
			rt.internalError(w, r, err)
			return
		}
	}

	rt.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
