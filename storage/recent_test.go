package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecent(capacity int, ttl time.Duration) (*Recent, *time.Time) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	r := NewRecent(NewMemoryStore(), capacity, ttl, nil)
	r.now = func() time.Time { return now }
	return r, &now
}

func ids(entries []RecentEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestRecentMostRecentFirst(t *testing.T) {
	r, now := newTestRecent(10, 0)
	for _, id := range []string{"a", "b", "c"} {
		r.Add("mentors", id)
		*now = now.Add(time.Minute)
	}
	assert.Equal(t, []string{"c", "b", "a"}, ids(r.List()))

	r.Add("mentors", "a")
	assert.Equal(t, []string{"a", "c", "b"}, ids(r.List()))
}

func TestRecentKindDistinguishesEntries(t *testing.T) {
	r, _ := newTestRecent(10, 0)
	r.Add("mentors", "1")
	r.Add("universities", "1")
	require.Len(t, r.List(), 2)
}

func TestRecentCapacity(t *testing.T) {
	r, _ := newTestRecent(2, 0)
	r.Add("mentors", "a")
	r.Add("mentors", "b")
	r.Add("mentors", "c")
	assert.Equal(t, []string{"c", "b"}, ids(r.List()))
}

func TestRecentExpiry(t *testing.T) {
	r, now := newTestRecent(10, 24*time.Hour)
	r.Add("mentors", "old")
	*now = now.Add(25 * time.Hour)
	r.Add("mentors", "new")

	assert.Equal(t, []string{"new"}, ids(r.List()))
}

func TestRecentUnavailable(t *testing.T) {
	r := NewRecent(nil, 10, time.Hour, nil)
	r.Add("mentors", "a")
	assert.Empty(t, r.List())
}
