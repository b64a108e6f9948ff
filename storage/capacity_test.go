package storage

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-catalog/config"
)

func TestDefaultCapacityToggleTwiceRestoresFullSet(t *testing.T) {
	for _, k := range []string{"WISHLIST_CAPACITY", "BOOKMARK_CAPACITY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, _ := config.Load()

	sets := map[string]*IDSet{
		"wishlist":  NewWishlist(NewMemoryStore(), cfg.WishlistCapacity, nil),
		"bookmarks": NewBookmarks(NewMemoryStore(), cfg.BookmarkCapacity, nil),
	}
	for name, s := range sets {
		t.Run(name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				s.Toggle(fmt.Sprintf("id%d", i))
			}
			before := s.IDs()
			require.Len(t, before, 100)

			assert.True(t, s.Toggle("x"))
			assert.False(t, s.Toggle("x"))
			assert.Equal(t, before, s.IDs())
		})
	}
}
