package registry

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func user(name, nick string) RegisteredUser {
	return RegisteredUser{
		Username:  name,
		BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Nickname:  nick,
	}
}

func TestAppendKeepsOrderAndDuplicates(t *testing.T) {
	r := New()
	assert.Equal(t, 0, r.Len())

	r.Append(user("ana", "aninha"))
	r.Append(user("bia", "bibi"))
	r.Append(user("ana", "outra"))

	list := r.List()
	require.Len(t, list, 3)
	assert.Equal(t, "ana", list[0].Username)
	assert.Equal(t, "bia", list[1].Username)
	assert.Equal(t, "outra", list[2].Nickname)
}

func TestListReturnsCopy(t *testing.T) {
	r := New()
	r.Append(user("ana", "aninha"))

	list := r.List()
	list[0].Username = "changed"

	assert.Equal(t, "ana", r.List()[0].Username)
}

func TestNicknameOfUsesFirstMatch(t *testing.T) {
	r := New()
	r.Append(user("ana", "aninha"))
	r.Append(user("ana", "outra"))

	nick, ok := r.NicknameOf("ana")
	assert.True(t, ok)
	assert.Equal(t, "aninha", nick)

	_, ok = r.NicknameOf("ghost")
	assert.False(t, ok)
}

func TestConcurrentAppend(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Append(user(fmt.Sprintf("u%d", i), "n"))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, r.Len())
}

func TestParseBirthDate(t *testing.T) {
	d, err := ParseBirthDate("2000-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseBirthDate("1999-12-31T23:00:00-03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC), d)

	for _, bad := range []string{"", "2000-13-01", "31/12/2000", "amanhã", "2000/02/30"} {
		_, err := ParseBirthDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseBirthDateCommonFormats(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2000/01/01", time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2000/1/9", time.Date(2000, 1, 9, 0, 0, 0, 0, time.UTC)},
		{"01/02/2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"1/2/2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"01-02-2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Jan 2, 2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"January 2, 2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2 Jan 2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Sun Jan 02 2000", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Sun, 02 Jan 2000 00:00:00 GMT", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Sun, 02 Jan 2000 22:00:00 -0300", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2000-01-02T10:30", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"  2000-01-02 ", time.Date(2000, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range tests {
		got, err := ParseBirthDate(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}
