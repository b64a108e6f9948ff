package storage

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"exchange-catalog/utils"
)

// Fixed storage keys.
const (
	WishlistKey  = "accommodation-wishlist"
	BookmarksKey = "platform-bookmarks"
	RecentKey    = "recently-viewed"
)

// IDSet is a small persisted, insertion-ordered set of entity ids, stored
// as one JSON array under a fixed key. Capacity <= 0 means unbounded;
// otherwise the oldest id is evicted once capacity is exceeded.
//
// If the backing store is unavailable or unreadable, reads yield an empty
// set and writes are skipped.
type IDSet struct {
	mu       sync.Mutex
	kv       KeyValue
	key      string
	capacity int
	logger   *utils.Logger
}

// NewIDSet binds a set to key in kv. kv may be nil.
func NewIDSet(kv KeyValue, key string, capacity int, logger *utils.Logger) *IDSet {
	if kv == nil {
		kv = Unavailable{}
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &IDSet{kv: kv, key: key, capacity: capacity, logger: logger}
}

// NewWishlist returns the accommodation wishlist.
func NewWishlist(kv KeyValue, capacity int, logger *utils.Logger) *IDSet {
	return NewIDSet(kv, WishlistKey, capacity, logger)
}

// NewBookmarks returns the platform bookmarks.
func NewBookmarks(kv KeyValue, capacity int, logger *utils.Logger) *IDSet {
	return NewIDSet(kv, BookmarksKey, capacity, logger)
}

// IDs returns the stored ids, oldest first.
func (s *IDSet) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Contains reports whether id is in the set.
func (s *IDSet) Contains(id string) bool {
	return slices.Contains(s.IDs(), id)
}

// Toggle removes id if present, otherwise adds it, then writes the whole set
// back. It returns true if id is in the set afterwards.
func (s *IDSet) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.load()
	present := false
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
	} else {
		ids = append(ids, id)
		if s.capacity > 0 && len(ids) > s.capacity {
			evicted := ids[:len(ids)-s.capacity]
			s.logger.Debug("[%s] capacity %d reached, evicting %v", s.key, s.capacity, evicted)
			ids = ids[len(ids)-s.capacity:]
		}
		present = true
	}

	s.save(ids)
	return present
}

// Clear removes every id.
func (s *IDSet) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(s.key); err != nil && !errors.Is(err, ErrUnavailable) {
		s.logger.Warn("[%s] clear failed: %v", s.key, err)
	}
}

func (s *IDSet) load() []string {
	data, err := s.kv.Get(s.key)
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnavailable):
		return nil
	case err != nil:
		s.logger.Warn("[%s] read failed, treating as empty: %v", s.key, err)
		return nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.logger.Warn("[%s] stored value is not a JSON array, treating as empty: %v", s.key, err)
		return nil
	}
	return ids
}

func (s *IDSet) save(ids []string) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		s.logger.Warn("[%s] encode failed: %v", s.key, err)
		return
	}
	if err := s.kv.Set(s.key, data); err != nil && !errors.Is(err, ErrUnavailable) {
		s.logger.Warn("[%s] write failed: %v", s.key, err)
	}
}
