package http

import (
	"errors"
	"net/http"

	"github.com/oakhall/clubboard/internal/board/service"
)

func (rt *Router) GetJoinClub(w http.ResponseWriter, r *http.Request) {
	rt.render(w, r, http.StatusOK, "join-club", viewData{Title: "Join the club"})
}

func (rt *Router) PostJoinClub(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	principal := requestSessionFrom(r.Context()).Principal()
	if principal.IsClubMember {
		http.Redirect(w, r, "/join-club", http.StatusSeeOther)
		return
	}

	code := r.PostFormValue("clubInviteCode")
	if err := rt.MembershipService.JoinClub(r.Context(), principal.ID, code); err != nil {
		if errors.Is(err, service.ErrInvalidInviteCode) {
			if err := rt.flash(w, r, service.MsgInvalidInviteCode); err != nil {
				rt.internalError(w, r, err)
				return
			}
			http.Redirect(w, r, "/join-club", http.StatusSeeOther)
			return
		}
		rt.internalError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
