package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"papochat/internal/app/page"
	"papochat/internal/app/session"
	"papochat/internal/pkg/errs"
	"papochat/internal/pkg/req"
	"papochat/internal/pkg/resp"
)

// The only account. Kept as the application has always shipped it; there is no user store
// behind the login form.
const (
	adminUsername = "admin"
	adminPassword = "admin"
)

// HandleLoginPage renders the login form.
func HandleLoginPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := page.LoginForm()
		respondPage(w, r, "Login", content, err)
	}
}

// HandleLogin checks the submitted credentials. On success any previous session is
// destroyed and a new one, holding a user record stamped with the login time, is issued
// before the browser goes home. Otherwise it goes back to the login form without any detail.
func HandleLogin(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.ParseForm(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		username := req.PostValue(r, "username")
		password := req.PostValue(r, "password")
		logger := zerolog.Ctx(r.Context())

		if username != adminUsername || password != adminPassword {
			logger.Warn().Str("username", username).Msg("Login rejected: invalid credentials")
			resp.Redirect(w, r, LoginPath)
			return
		}

		if previous := session.FromContext(r.Context()); previous != nil {
			if err := deps.Sessions.Destroy(w, r); err != nil {
				logger.Warn().Err(err).Msg("Failed to destroy previous session on login")
			}
			deps.Hub.DisconnectSession(previous.ID)
		}

		sess, err := deps.Sessions.New()
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionStore, err))
			return
		}

		sess.User = &session.User{
			Username:  username,
			LastLogin: time.Now(),
		}

		if err := deps.Sessions.Save(w, r, sess); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionStore, err))
			return
		}

		logger.Info().Str("username", username).Msg("User logged in")
		resp.Redirect(w, r, HomePath)
	}
}

// HandleLogout destroys the session and closes the chat sockets opened with it.
// A store failure yields a 500.
func HandleLogout(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := deps.Sessions.Destroy(w, r); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrLogoutFailed, err))
			return
		}

		if sess := session.FromContext(r.Context()); sess != nil {
			deps.Hub.DisconnectSession(sess.ID)
		}

		resp.Redirect(w, r, LoginPath)
	}
}
