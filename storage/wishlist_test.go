package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-catalog/utils"
)

// failingStore simulates a storage that exists but errors on every call.
type failingStore struct{}

func (failingStore) Get(string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (failingStore) Set(string, []byte) error   { return errors.New("disk on fire") }
func (failingStore) Delete(string) error        { return errors.New("disk on fire") }

func TestIDSetToggleTwiceRestoresState(t *testing.T) {
	kv := NewMemoryStore()
	w := NewWishlist(kv, 0, utils.NewNopLogger())

	w.Toggle("a")
	w.Toggle("b")
	before := w.IDs()

	assert.True(t, w.Toggle("c"))
	assert.False(t, w.Toggle("c"))
	assert.Equal(t, before, w.IDs())

	assert.False(t, w.Toggle("a"))
	assert.True(t, w.Toggle("a"))
	assert.ElementsMatch(t, before, w.IDs())
}

func TestIDSetPersistsUnderFixedKey(t *testing.T) {
	kv := NewMemoryStore()
	w := NewWishlist(kv, 0, nil)
	w.Toggle("acc-1")

	raw, err := kv.Get(WishlistKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["acc-1"]`, string(raw))

	// A second instance over the same store sees the write.
	assert.True(t, NewWishlist(kv, 0, nil).Contains("acc-1"))
	assert.False(t, NewBookmarks(kv, 0, nil).Contains("acc-1"))
}

func TestIDSetEvictsOldestAtCapacity(t *testing.T) {
	w := NewBookmarks(NewMemoryStore(), 3, nil)
	for _, id := range []string{"a", "b", "c", "d"} {
		w.Toggle(id)
	}
	assert.Equal(t, []string{"b", "c", "d"}, w.IDs())
}

func TestIDSetUnavailableIsNoop(t *testing.T) {
	for name, kv := range map[string]KeyValue{
		"nil":         nil,
		"unavailable": Unavailable{},
		"failing":     failingStore{},
		"empty dir":   NewFileStore(""),
	} {
		t.Run(name, func(t *testing.T) {
			w := NewWishlist(kv, 10, nil)
			assert.NotPanics(t, func() { w.Toggle("x") })
			assert.Empty(t, w.IDs())
			assert.False(t, w.Contains("x"))
		})
	}
}

func TestIDSetMalformedValueIsEmpty(t *testing.T) {
	kv := NewMemoryStore()
	require.NoError(t, kv.Set(WishlistKey, []byte(`{"not":"an array"}`)))

	w := NewWishlist(kv, 0, nil)
	assert.Empty(t, w.IDs())
	assert.True(t, w.Toggle("x"))
	assert.Equal(t, []string{"x"}, w.IDs())
}

func TestIDSetClear(t *testing.T) {
	w := NewWishlist(NewMemoryStore(), 0, nil)
	w.Toggle("a")
	w.Clear()
	assert.Empty(t, w.IDs())
}
