package services

import (
	"strings"
	"unicode"

	"exchange-catalog/utils"
)

// Cleaner normalises records as they arrive from the API.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean drops records without an id, keeps the first record for each id,
// and applies tidy (if non-nil) to each kept record.
func Clean[T any](c *Cleaner, name string, raw []T, key func(T) string, tidy func(*T)) []T {
	seen := make(map[string]struct{})
	result := make([]T, 0, len(raw))

	for i := range raw {
		rec := raw[i]
		id := strings.TrimSpace(key(rec))
		if id == "" {
			c.logger.Warn("[cleaner] %s: dropping record %d with empty id", name, i)
			continue
		}
		if _, dup := seen[id]; dup {
			c.logger.Debug("[cleaner] %s: duplicate id skipped: %s", name, id)
			continue
		}
		seen[id] = struct{}{}

		if tidy != nil {
			tidy(&rec)
		}
		result = append(result, rec)
	}

	if dropped := len(raw) - len(result); dropped > 0 {
		c.logger.Info("[cleaner] %s: cleaned %d -> %d records (dropped %d)",
			name, len(raw), len(result), dropped)
	}
	return result
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// normaliseList tidies every element and drops empty ones.
func normaliseList(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := values[:0:0]
	for _, v := range values {
		if v = normaliseText(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
