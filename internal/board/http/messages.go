package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/oakhall/clubboard/internal/board/service"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/idx"
)

// GetMessages is public: anyone can read the board, but the template only
// reveals author identities to club members.
func (rt *Router) GetMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := rt.MessageService.List(r.Context())
	if err != nil {
		rt.internalError(w, r, err)
		return
	}

	rt.render(w, r, http.StatusOK, "messages", viewData{
		Title:    "All messages",
		Messages: messages,
	})
}

func (rt *Router) GetNewMessage(w http.ResponseWriter, r *http.Request) {
	form := url.Values{}
	for _, field := range []string{"title", "content"} {
		if v := r.URL.Query().Get(field); v != "" {
			form.Set(field, v)
		}
	}

	rt.render(w, r, http.StatusOK, "message-new", viewData{
		Title: "New message",
		Form:  form,
	})
}

func (rt *Router) PostNewMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "Malformed form submission.")
		return
	}

	principal := requestSessionFrom(r.Context()).Principal()
	title := r.PostFormValue("title")
	content := r.PostFormValue("content")

	if _, err := rt.MessageService.Post(r.Context(), *principal, title, content); err != nil {
		var violations service.Violations
		if !errors.As(err, &violations) {
			rt.internalError(w, r, err)
			return
		}
		if err := rt.flash(w, r, violations.Messages()...); err != nil {
			rt.internalError(w, r, err)
			return
		}
		prefill := url.Values{}
		prefill.Set("title", title)
		prefill.Set("content", content)
		http.Redirect(w, r, "/messages/new?"+prefill.Encode(), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (rt *Router) GetDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if _, err := idx.Parse(id); err != nil {
		rt.renderError(w, r, http.StatusBadRequest, "Invalid message id.")
		return
	}

	principal := requestSessionFrom(r.Context()).Principal()
	if err := rt.MessageService.Delete(r.Context(), *principal, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			rt.renderError(w, r, http.StatusBadRequest, "Invalid message id.")
			return
		}
		rt.internalError(w, r, err)
		return
	}

	http.Redirect(w, r, "/messages", http.StatusSeeOther)
}
