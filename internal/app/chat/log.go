/*
Package chat holds the chat message log and the websocket hub that pushes new messages
to open chat pages.
*/
package chat

import (
	"sync"
	"time"

	"papochat/internal/pkg/randx"
)

// ChatMessage is one entry of the chat log. Username is free text chosen from the
// registered users at post time; it is not checked against the registry afterwards.
type ChatMessage struct {
	ID       string
	Username string
	Message  string
	SentAt   time.Time
}

// NewMessage builds a ChatMessage with a fresh ID.
func NewMessage(username, message string, sentAt time.Time) ChatMessage {
	return ChatMessage{
		ID:       randx.MessageID(),
		Username: username,
		Message:  message,
		SentAt:   sentAt,
	}
}

// Log is an append-only, concurrency-safe list of chat messages.
type Log struct {
	mu       sync.RWMutex
	messages []ChatMessage
}

// NewLog returns an empty Log.
func NewLog() *Log {
	return &Log{}
}

// Append adds m at the end of the log.
func (l *Log) Append(m ChatMessage) {
	l.mu.Lock()
	l.messages = append(l.messages, m)
	l.mu.Unlock()
}

// List returns a copy of all messages, oldest first.
func (l *Log) List() []ChatMessage {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
