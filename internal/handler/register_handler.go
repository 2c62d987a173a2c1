package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"papochat/internal/app/page"
	"papochat/internal/app/registry"
	"papochat/internal/app/session"
	"papochat/internal/pkg/errs"
	"papochat/internal/pkg/req"
	"papochat/internal/pkg/resp"
)

const (
	msgUsernameRequired  = "Usuário é obrigatório"
	msgBirthDateRequired = "Data de nascimento é obrigatório"
	msgBirthDateInvalid  = "Data de nascimento inválida"
	msgNicknameRequired  = "Apelido é obrigatório"
)

// HandleRegisterPage renders the registration form and the user table. Errors left by a
// failed submission are shown once and then dropped from the session.
func HandleRegisterPage(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context())

		fieldErrs := sess.TakeErrors()
		if fieldErrs != nil {
			if err := deps.Sessions.Save(w, r, sess); err != nil {
				zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to clear registration errors from session")
			}
		}

		content, err := page.RegisterForm(fieldErrs, deps.Users.List())
		respondPage(w, r, "Cadastro", content, err)
	}
}

// HandleRegister appends a user when username, birth date and nickname are all present
// and the date parses. Otherwise it stores one message per failing field in the session.
// Either way the browser is sent back to the registration page.
func HandleRegister(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if customErr := req.ParseForm(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		username := req.PostValue(r, "username")
		data := req.PostValue(r, "data")
		nickname := req.PostValue(r, "nickname")

		var fieldErrs session.FieldErrors
		if username == "" {
			fieldErrs.Username = msgUsernameRequired
		}
		if nickname == "" {
			fieldErrs.Nickname = msgNicknameRequired
		}

		birthDate, err := registry.ParseBirthDate(data)
		switch {
		case data == "":
			fieldErrs.Data = msgBirthDateRequired
		case err != nil:
			fieldErrs.Data = msgBirthDateInvalid
		}

		if fieldErrs.Empty() {
			deps.Users.Append(registry.RegisteredUser{
				Username:  username,
				BirthDate: birthDate,
				Nickname:  nickname,
			})
			zerolog.Ctx(r.Context()).Info().
				Str("username", username).
				Int("registered_users", deps.Users.Len()).
				Msg("User registered")

			resp.Redirect(w, r, RegisterPath)
			return
		}

		sess := session.FromContext(r.Context())
		sess.Errors = &fieldErrs
		if err := deps.Sessions.Save(w, r, sess); err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrSessionStore, err))
			return
		}

		resp.Redirect(w, r, RegisterPath)
	}
}
