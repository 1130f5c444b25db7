package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/oakhall/clubboard/internal/board/service"
)

func (rt *Router) GetSignIn(w http.ResponseWriter, r *http.Request) {
	if requestSessionFrom(r.Context()).Principal() != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := url.Values{}
	if v := r.URL.Query().Get("email"); v != "" {
		form.Set("email", v)
	}

	data := viewData{
		Title: "Sign in",
		Form:  form,
	}
	if p := r.URL.Query().Get(redirectToParam); safeRedirectPath(p) {
		data.RedirectTo = p
	}

	rt.render(w, r, http.StatusOK, "sign-in", data)
}

func (rt *Router) PostSignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	// Where to land after success, and where to bounce back on failure.
	destination := "/"
	back := url.Values{}
	if p := r.PostFormValue(redirectToParam); safeRedirectPath(p) {
		destination = p
		back.Set(redirectToParam, p)
	}

	fail := func(messages ...string) {
		if err := rt.flash(w, r, messages...); err != nil {
			rt.internalError(w, r, err)
			return
		}
		if email != "" {
			back.Set("email", email)
		}
		target := "/sign-in"
		if len(back) > 0 {
			target += "?" + back.Encode()
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
	}

	var v service.Violations
	email = service.ValidateSignIn(&v, email, password)
	if len(v) > 0 {
		fail(v.Messages()...)
		return
	}

	user, err := rt.AuthService.Authenticate(r.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(service.MsgInvalidCredentials)
			return
		}
		rt.internalError(w, r, err)
		return
	}

	rt.signIn(w, r, user.ID, destination)
}
