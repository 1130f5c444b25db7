package http

import (
	"context"

	"github.com/oakhall/clubboard/internal/board/domain"
)

// RequestSession is the per-request resolved session state. It is built
// exactly once by the session middleware and read-only afterwards.
type RequestSession struct {
	Session domain.Session // zero value when the request carries no session
	User    *domain.User   // nil when unauthenticated
}

// HasSession reports whether a server-side session row backs this request.
func (rs *RequestSession) HasSession() bool {
	return rs != nil && rs.Session.ID != ""
}

// Principal returns the authenticated user, or nil.
func (rs *RequestSession) Principal() *domain.User {
	if rs == nil {
		return nil
	}
	return rs.User
}

type sessionCtxKey struct{}

func withRequestSession(ctx context.Context, rs *RequestSession) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, rs)
}

// requestSessionFrom returns the resolved session state for the request, or
// nil when the middleware has not run.
func requestSessionFrom(ctx context.Context) *RequestSession {
	rs, _ := ctx.Value(sessionCtxKey{}).(*RequestSession)
	return rs
}
