package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/oakhall/clubboard/internal/board/service"
)

func (rt *Router) GetSignUp(w http.ResponseWriter, r *http.Request) {
	if requestSessionFrom(r.Context()).Principal() != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	form := url.Values{}
	for _, field := range []string{"email", "firstName", "lastName"} {
		if v := r.URL.Query().Get(field); v != "" {
			form.Set(field, v)
		}
	}

	rt.render(w, r, http.StatusOK, "sign-up", viewData{
		Title: "Sign up",
		Form:  form,
	})
}

func (rt *Router) PostSignUp(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	in := service.SignUpInput{
		Email:           r.PostFormValue("email"),
		FirstName:       r.PostFormValue("firstName"),
		LastName:        r.PostFormValue("lastName"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
	}

	user, err := rt.SignupService.SignUp(r.Context(), in)
	if err != nil {
		var violations service.Violations
		if !errors.As(err, &violations) {
			rt.internalError(w, r, err)
			return
		}
		if err := rt.flash(w, r, violations.Messages()...); err != nil {
			rt.internalError(w, r, err)
			return
		}
		// Prefill everything except the passwords.
		prefill := url.Values{}
		prefill.Set("email", in.Email)
		prefill.Set("firstName", in.FirstName)
		prefill.Set("lastName", in.LastName)
		http.Redirect(w, r, "/sign-up?"+prefill.Encode(), http.StatusSeeOther)
		return
	}

	rt.signIn(w, r, user.ID, "/")
}

// signIn replaces any existing session with a fresh one for userID and
// redirects. Rotating the session id on authentication blocks fixation.
func (rt *Router) signIn(w http.ResponseWriter, r *http.Request, userID, location string) {
	var oldToken string
	if cookie, err := r.Cookie(rt.cookieName); err == nil {
		oldToken = cookie.Value
	}

	token, err := rt.SessionService.Rotate(r.Context(), oldToken, userID)
	if err != nil {
		rt.internalError(w, r, err)
		return
	}

	rt.setSessionCookie(w, token)
	http.Redirect(w, r, location, http.StatusSeeOther)
}
