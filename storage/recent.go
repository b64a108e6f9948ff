package storage

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"exchange-catalog/utils"
)

// RecentEntry is one recently viewed record.
type RecentEntry struct {
	Kind     string    `json:"kind"`
	ID       string    `json:"id"`
	ViewedAt time.Time `json:"viewedAt"`
}

// Recent is a bounded, most-recent-first queue of viewed records. Entries
// older than ttl are dropped on read.
type Recent struct {
	mu       sync.Mutex
	kv       KeyValue
	capacity int
	ttl      time.Duration
	now      func() time.Time
	logger   *utils.Logger
}

func NewRecent(kv KeyValue, capacity int, ttl time.Duration, logger *utils.Logger) *Recent {
	if kv == nil {
		kv = Unavailable{}
	}
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Recent{kv: kv, capacity: capacity, ttl: ttl, now: time.Now, logger: logger}
}

// Add records a view, moving an already-present record to the front.
func (r *Recent) Add(kind, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := []RecentEntry{{Kind: kind, ID: id, ViewedAt: r.now()}}
	for _, e := range r.fresh() {
		if e.Kind == kind && e.ID == id {
			continue
		}
		entries = append(entries, e)
	}
	if r.capacity > 0 && len(entries) > r.capacity {
		entries = entries[:r.capacity]
	}
	r.save(entries)
}

// List returns unexpired entries, most recent first.
func (r *Recent) List() []RecentEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fresh()
}

func (r *Recent) fresh() []RecentEntry {
	data, err := r.kv.Get(RecentKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrUnavailable) {
			r.logger.Warn("[recent] read failed: %v", err)
		}
		return nil
	}

	var entries []RecentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		r.logger.Warn("[recent] stored value is malformed, ignoring: %v", err)
		return nil
	}

	now := r.now()
	kept := entries[:0]
	for _, e := range entries {
		if r.ttl > 0 && now.Sub(e.ViewedAt) > r.ttl {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

func (r *Recent) save(entries []RecentEntry) {
	data, err := json.Marshal(entries)
	if err != nil {
		r.logger.Warn("[recent] encode failed: %v", err)
		return
	}
	if err := r.kv.Set(RecentKey, data); err != nil && !errors.Is(err, ErrUnavailable) {
		r.logger.Warn("[recent] write failed: %v", err)
	}
}
