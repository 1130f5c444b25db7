package http

import "net/http"

func (rt *Router) GetIndex(w http.ResponseWriter, r *http.Request) {
	rt.render(w, r, http.StatusOK, "index", viewData{Title: "Home"})
}
