package handler

import (
	"net/http"
	"net/url"

	"github.com/gorilla/websocket"

	"papochat/internal/app/chat"
	"papochat/internal/app/session"
	"papochat/internal/configs"
	"papochat/internal/pkg/logx"
)

// newUpgrader accepts same-host origins and the configured allowed origins.
// Development accepts any origin.
func newUpgrader(cfg *configs.AppConfig) websocket.Upgrader {
	allowedOrigins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		allowedOrigins[origin] = struct{}{}
	}

	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			if cfg.IsDevelopment() {
				return true
			}

			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			if _, ok := allowedOrigins[origin]; ok {
				return true
			}

			if u, err := url.Parse(origin); err == nil && u.Host == r.Host {
				return true
			}

			logx.Warn("WebSocket connection rejected: Origin not allowed.", "origin", origin)
			return false
		},
	}
}

// HandleChatWebSocket upgrades an open chat page so it receives new messages as they
// are posted. The connection is tied to the request's session: it is closed on logout,
// and on the first ping tick after the session expires.
func HandleChatWebSocket(deps *AppDeps, upgrader websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Warn("Failed to upgrade connection to WebSocket", "error", err.Error())
			return
		}

		client := chat.NewClient(deps.Hub, conn, sess.User.Username, sess.ID, deps.Sessions.Active)
		if !deps.Hub.Register(client) {
			conn.Close()
			return
		}

		go client.WritePump()
		client.ReadPump()
	}
}
