package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogAppendKeepsInsertionOrder(t *testing.T) {
	l := NewLog()
	base := time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

	l.Append(NewMessage("ana", "oi", base))
	l.Append(NewMessage("bia", "olá", base.Add(time.Second)))
	l.Append(NewMessage("ana", "tudo bem?", base.Add(2*time.Second)))

	require.Equal(t, 3, l.Len())
	list := l.List()
	assert.Equal(t, []string{"oi", "olá", "tudo bem?"}, []string{list[0].Message, list[1].Message, list[2].Message})
}

func TestNewMessageAssignsUniqueIDs(t *testing.T) {
	a := NewMessage("ana", "oi", time.Now())
	b := NewMessage("ana", "oi", time.Now())

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestLogListReturnsCopy(t *testing.T) {
	l := NewLog()
	l.Append(NewMessage("ana", "oi", time.Now()))

	list := l.List()
	list[0].Message = "changed"

	assert.Equal(t, "oi", l.List()[0].Message)
}
