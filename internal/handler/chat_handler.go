package handler

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"papochat/internal/app/chat"
	"papochat/internal/app/page"
	"papochat/internal/pkg/req"
	"papochat/internal/pkg/resp"
)

// HandleChatPage renders the chat form and the message log. With no registered user there
// is nobody to post as, so the browser is sent to the registration page instead.
func HandleChatPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if deps.Users.Len() == 0 {
			resp.Redirect(w, r, RegisterPath)
			return
		}

		content, err := page.ChatForm(deps.Users.List(), deps.Messages.List(), deps.Users.NicknameOf)
		respondPage(w, r, "Chat", content, err)
	}
}

// HandleChat appends a message when both the text and the username are present and pushes
// it to open chat pages. Incomplete submissions are ignored. It always redirects to the chat.
func HandleChat(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.ParseForm(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		message := req.PostValue(r, "message")
		username := req.PostValue(r, "username")

		if message != "" && username != "" {
			m := chat.NewMessage(username, message, time.Now())
			deps.Messages.Append(m)

			deps.Hub.Broadcast(page.ViewMessage(m, deps.Users.NicknameOf).Event())

			zerolog.Ctx(r.Context()).Debug().
				Str("message_id", m.ID).
				Str("username", username).
				Msg("Chat message posted")
		}

		resp.Redirect(w, r, ChatPath)
	}
}
