/*
Package handler provides the HTTP routes of papochat.

Static assets and the health check are served directly. Every other route, including
unknown paths, runs behind the session loader and the access guard, which sends
anonymous visitors to the login page.
*/
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"papochat/internal/pkg/logx"
)

const (
	HomePath     = "/"
	LoginPath    = "/entrar"
	LogoutPath   = "/sair"
	RegisterPath = "/cadastrar"
	ChatPath     = "/chat"
	ChatWSPath   = "/chat/ws"
	PublicPrefix = "/public/"
)

// Router sets up the routing table with the global middleware stack.
func Router(deps *AppDeps) http.Handler {
	r := chi.NewRouter()

	corsAllowedOrigins := []string{}
	if deps.Config.IsDevelopment() {
		corsAllowedOrigins = []string{"*"}
	} else if len(deps.Config.AllowedOrigins) > 0 {
		corsAllowedOrigins = deps.Config.AllowedOrigins
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   corsAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger(PublicPrefix))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})

	r.Handle(PublicPrefix+"*", http.StripPrefix(PublicPrefix, http.FileServer(http.Dir(deps.Config.PublicDir))))

	guard := func(next http.Handler) http.Handler {
		return deps.Sessions.Load(deps.Sessions.Guard(LoginPath)(next))
	}

	r.Group(func(app chi.Router) {
		app.Use(guard)

		app.Get(HomePath, HandleHome(deps))

		app.Get(LoginPath, HandleLoginPage(deps))
		app.Post(LoginPath, HandleLogin(deps))
		app.Get(LogoutPath, HandleLogout(deps))

		app.Get(RegisterPath, HandleRegisterPage(deps))
		app.Post(RegisterPath, HandleRegister(deps))

		app.Get(ChatPath, HandleChatPage(deps))
		app.Post(ChatPath, HandleChat(deps))
		app.Get(ChatWSPath, HandleChatWebSocket(deps, newUpgrader(deps.Config)))
	})

	r.NotFound(guard(http.NotFoundHandler()).ServeHTTP)
	r.MethodNotAllowed(guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})).ServeHTTP)

	return r
}
