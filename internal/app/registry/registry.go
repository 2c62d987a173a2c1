/*
Package registry holds the users registered through the registration form.

Entries are kept in insertion order and are never updated or removed. Usernames are not
unique: registering the same username twice yields two rows.
*/
package registry

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// BirthDateLayout is the value format of an HTML date input.
const BirthDateLayout = "2006-01-02"

// RegisteredUser is one row of the registry.
type RegisteredUser struct {
	Username  string
	BirthDate time.Time
	Nickname  string
}

// Registry is an append-only, concurrency-safe list of registered users.
type Registry struct {
	mu    sync.RWMutex
	users []RegisteredUser
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Append adds u at the end of the registry.
func (r *Registry) Append(u RegisteredUser) {
	r.mu.Lock()
	r.users = append(r.users, u)
	r.mu.Unlock()
}

// List returns a copy of all users, oldest first.
func (r *Registry) List() []RegisteredUser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RegisteredUser, len(r.users))
	copy(out, r.users)
	return out
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users)
}

// NicknameOf returns the nickname of the first user registered as username.
func (r *Registry) NicknameOf(username string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return u.Nickname, true
		}
	}
	return "", false
}

// birthDateLayouts are tried in order. Besides the date input format they cover the
// shapes a browser's Date parser accepts for typed-in values. Numeric dates with slashes
// or dashes are month first, as there.
var birthDateLayouts = []string{
	BirthDateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006/1/2",
	"1/2/2006",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 02 2006",
	time.RFC1123,
	time.RFC1123Z,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
}

// ParseBirthDate parses a birth date field. The result is the calendar date as written,
// at midnight UTC.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range birthDateLayouts {
		ts, err := time.Parse(layout, s)
		if err != nil {
			continue
		}

		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("invalid birth date %q", s)
}
