package handler

import (
	"html/template"
	"net/http"

	"papochat/internal/app/page"
	"papochat/internal/app/session"
	"papochat/internal/pkg/errs"
	"papochat/internal/pkg/resp"
)

// respondPage wraps content in the document shell for the request's user and writes it.
// fragmentErr is the error returned while building content, if any.
func respondPage(w http.ResponseWriter, r *http.Request, title string, content template.HTML, fragmentErr error) {
	if fragmentErr != nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrPageRender, fragmentErr))
		return
	}

	body, err := page.Render(session.UserFromContext(r.Context()), content, page.Options{Title: title})
	if err != nil {
		resp.RespondError(w, r, errs.NewError(errs.ErrPageRender, err))
		return
	}

	resp.RespondPage(w, r, body)
}

// HandleHome renders the home page.
func HandleHome(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		content, err := page.Home()
		respondPage(w, r, "Tela Inicial", content, err)
	}
}
