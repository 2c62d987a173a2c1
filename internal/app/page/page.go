/*
Package page renders the HTML documents of the site.

Every page is a content fragment wrapped by Render in the shared document shell, which
carries the title, the stylesheet and, for logged-in users, the navigation menu.
Dates are shown in the Brazilian format used by the rest of the interface.
*/
package page

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"papochat/internal/app/chat"
	"papochat/internal/app/registry"
	"papochat/internal/app/session"
)

const (
	// DateLayout formats calendar dates, e.g. 01/02/2000.
	DateLayout = "02/01/2006"

	// DateTimeLayout formats instants, e.g. 19/10/2026, 14:05:09.
	DateTimeLayout = "02/01/2006, 15:04:05"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("page").
		Funcs(template.FuncMap{
			"date":     FormatDate,
			"datetime": FormatDateTime,
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// Options configures the document shell.
type Options struct {
	Title string
}

// FormatDate renders a calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatDateTime renders an instant in its own location.
func FormatDateTime(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Render wraps content in the document shell. The navigation menu is included only
// when user is not nil.
func Render(user *session.User, content template.HTML, opts Options) (string, error) {
	return execute("layout", struct {
		Title   string
		User    *session.User
		Content template.HTML
	}{
		Title:   opts.Title,
		User:    user,
		Content: content,
	})
}

// Home returns the home page fragment.
func Home() (template.HTML, error) {
	return fragment("home", nil)
}

// LoginForm returns the login form fragment.
func LoginForm() (template.HTML, error) {
	return fragment("login", nil)
}

// RegisterForm returns the registration form, one error paragraph per field in errs,
// and the table of registered users.
func RegisterForm(errs *session.FieldErrors, users []registry.RegisteredUser) (template.HTML, error) {
	return fragment("register", struct {
		Errors *session.FieldErrors
		Users  []registry.RegisteredUser
	}{
		Errors: errs,
		Users:  users,
	})
}

// NicknameLookup resolves a username to a registered nickname.
type NicknameLookup func(username string) (string, bool)

// MessageView is a chat message ready for display.
type MessageView struct {
	ID      string
	Display string
	Message string
	SentAt  string
}

// ViewMessage formats m, showing the nickname registered for its username when there is one.
func ViewMessage(m chat.ChatMessage, nicknameOf NicknameLookup) MessageView {
	display := m.Username
	if nicknameOf != nil {
		if nick, ok := nicknameOf(m.Username); ok && nick != "" {
			display = nick
		}
	}

	return MessageView{
		ID:      m.ID,
		Display: display,
		Message: m.Message,
		SentAt:  FormatDateTime(m.SentAt),
	}
}

// Event converts a view into the websocket event pushed to open chat pages.
func (v MessageView) Event() chat.Event {
	return chat.Event{
		ID:      v.ID,
		Display: v.Display,
		Message: v.Message,
		SentAt:  v.SentAt,
	}
}

// ChatForm returns the chat form, whose username choices are the registered users, and
// the message list in log order.
func ChatForm(users []registry.RegisteredUser, messages []chat.ChatMessage, nicknameOf NicknameLookup) (template.HTML, error) {
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, ViewMessage(m, nicknameOf))
	}

	return fragment("chat", struct {
		Users    []registry.RegisteredUser
		Messages []MessageView
	}{
		Users:    users,
		Messages: views,
	})
}

func fragment(name string, data any) (template.HTML, error) {
	out, err := execute(name, data)
	if err != nil {
		return "", err
	}
	// out was produced by html/template and is already escaped.
	return template.HTML(out), nil
}

func execute(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return sb.String(), nil
}
