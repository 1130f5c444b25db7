package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/oakhall/clubboard/internal/board/service"
	"github.com/oakhall/clubboard/internal/board/store"
	"github.com/oakhall/clubboard/pkg/httpx"
	"github.com/oakhall/clubboard/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	logger     *slog.Logger
	env        string
	cookieName string
	sessionTTL time.Duration
	startTime  time.Time
	templates  map[string]*template.Template

	store             store.Store
	AuthService       *service.AuthService
	SignupService     *service.SignupService
	MembershipService *service.MembershipService
	SessionService    *service.SessionService
	MessageService    *service.MessageService
}

func NewRouter(
	env, cookieName string,
	sessionTTL time.Duration,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:        http.NewServeMux(),
		env:        env,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
		startTime:  time.Now(),
		templates:  parseTemplates(),
		store:      st,
		logger:     logger,
	}

	// Set default middleware chain. Session resolution runs inside the
	// logging middleware so handlers see both.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		r.sessionMiddleware,
	}

	return r
}

func (rt *Router) ApplyRoutes() {
	rt.registerPages()
	rt.registerAuth()
	rt.registerMembership()
	rt.registerMessages()
	rt.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (rt *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(rt.Mux, rt.middlewares...).ServeHTTP(w, req)
}

func (rt *Router) registerPages() {
	rt.Mux.HandleFunc("GET /{$}", rt.GetIndex)
}

func (rt *Router) registerAuth() {
	rt.Mux.HandleFunc("GET /sign-up", rt.GetSignUp)
	rt.Mux.HandleFunc("GET /sign-in", rt.GetSignIn)
	rt.Mux.HandleFunc("GET /sign-out", rt.GetSignOut)

	// Credential-bearing posts get the strict limit to slow brute force.
	rt.Mux.Handle("POST /sign-up",
		httpx.Chain(http.HandlerFunc(rt.PostSignUp),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	rt.Mux.Handle("POST /sign-in",
		httpx.Chain(http.HandlerFunc(rt.PostSignIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (rt *Router) registerMembership() {
	rt.Mux.HandleFunc("GET /join-club", rt.dispatch(rt.GetJoinClub, RequireSignedIn))
	rt.Mux.Handle("POST /join-club",
		httpx.Chain(rt.dispatch(rt.PostJoinClub, RequireSignedIn),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	rt.Mux.HandleFunc("GET /admin", rt.dispatch(rt.GetAdmin, RequireSignedInOr401))
	rt.Mux.Handle("POST /admin/grant",
		httpx.Chain(rt.dispatch(rt.PostAdminGrant, RequireSignedInOr401),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	rt.Mux.Handle("POST /admin/revoke",
		httpx.Chain(rt.dispatch(rt.PostAdminRevoke, RequireSignedInOr401),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (rt *Router) registerMessages() {
	rt.Mux.HandleFunc("GET /messages", rt.GetMessages)
	rt.Mux.HandleFunc("GET /messages/new", rt.dispatch(rt.GetNewMessage, RequireSignedIn, RequireMember))
	rt.Mux.Handle("POST /messages/new",
		httpx.Chain(rt.dispatch(rt.PostNewMessage, RequireSignedIn, RequireMember),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	rt.Mux.HandleFunc("GET /messages/delete", rt.dispatch(rt.GetDeleteMessage, RequireAdmin))
}

func (rt *Router) registerSystem() {
	rt.Mux.Handle("GET /livez", LivezHandler(rt.startTime))
	rt.Mux.Handle("GET /readyz", ReadyzHandler(rt.startTime, rt.store))
}
