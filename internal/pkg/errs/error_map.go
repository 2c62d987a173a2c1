package errs

import "net/http"

// errorMap holds the message and HTTP status for every application error code.
var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrFormParseFailed:       {Code: ErrFormParseFailed, Message: "Não foi possível ler o formulário.", Status: http.StatusBadRequest},
	ErrRequestEntityTooLarge: {Code: ErrRequestEntityTooLarge, Message: "Requisição grande demais.", Status: http.StatusRequestEntityTooLarge},

	// 3xxx: Session and Security Errors
	ErrSessionStore: {Code: ErrSessionStore, Message: "Erro ao salvar a sessão", Status: http.StatusInternalServerError},
	ErrLogoutFailed: {Code: ErrLogoutFailed, Message: "Erro ao sair", Status: http.StatusInternalServerError},

	// 5xxx: Internal System Errors
	ErrUnknown:    {Code: ErrUnknown, Message: "Algo deu errado. Tente novamente.", Status: http.StatusInternalServerError},
	ErrPageRender: {Code: ErrPageRender, Message: "Erro ao montar a página.", Status: http.StatusInternalServerError},
}
