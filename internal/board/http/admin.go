package http

import (
	"errors"
	"net/http"

	"github.com/oakhall/clubboard/internal/board/service"
)

func (rt *Router) GetAdmin(w http.ResponseWriter, r *http.Request) {
	rt.render(w, r, http.StatusOK, "admin", viewData{Title: "Administrator rights"})
}

func (rt *Router) PostAdminGrant(w http.ResponseWriter, r *http.Request) {
	rt.setAdmin(w, r, true)
}

func (rt *Router) PostAdminRevoke(w http.ResponseWriter, r *http.Request) {
	rt.setAdmin(w, r, false)
}

// setAdmin flips the caller's own admin flag after checking the submitted
// admin code. Success and failure both land back on the admin page; failures
// explain themselves through a flash message.
func (rt *Router) setAdmin(w http.ResponseWriter, r *http.Request, isAdmin bool) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	principal := requestSessionFrom(r.Context()).Principal()
	secret := r.PostFormValue("adminSecret")

	if err := rt.MembershipService.SetAdmin(r.Context(), principal.ID, secret, isAdmin); err != nil {
		var message string
		switch {
		case errors.Is(err, service.ErrAdminSecretRequired):
			message = service.MsgAdminSecretRequired
		case errors.Is(err, service.ErrInvalidAdminSecret):
			message = service.MsgInvalidAdminSecret
		default:
			rt.internalError(w, r, err)
			return
		}
		if err := rt.flash(w, r, message); err != nil {
			rt.internalError(w, r, err)
			return
		}
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
