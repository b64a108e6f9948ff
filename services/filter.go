package services

import (
	"fmt"
	"slices"
	"strings"
)

// Schema is the field-accessor map that makes a record type filterable.
// Field names are shared between criteria, option builders and aggregates.
type Schema[T any] struct {
	Text    map[string]func(T) string
	Lists   map[string]func(T) []string
	Numbers map[string]func(T) (float64, bool)
	Flags   map[string]func(T) bool

	// Search names the Text and Lists fields the free-text term is tested against.
	Search []string
}

// Validate checks that every search field has an accessor.
func (s *Schema[T]) Validate() error {
	for _, f := range s.Search {
		if s.Text[f] == nil && s.Lists[f] == nil {
			return fmt.Errorf("search field %q has no text or list accessor", f)
		}
	}
	return nil
}

// Fields returns every field name the schema knows, sorted.
func (s *Schema[T]) Fields() []string {
	var names []string
	for f := range s.Text {
		names = append(names, f)
	}
	for f := range s.Lists {
		names = append(names, f)
	}
	for f := range s.Numbers {
		names = append(names, f)
	}
	for f := range s.Flags {
		names = append(names, f)
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Has reports whether field is known to the schema.
func (s *Schema[T]) Has(field string) bool {
	return s.Text[field] != nil || s.Lists[field] != nil || s.Numbers[field] != nil || s.Flags[field] != nil
}

// Values returns a field's value(s) as strings: scalar text fields yield
// zero or one value, list fields yield their elements.
func (s *Schema[T]) Values(rec T, field string) ([]string, bool) {
	if fn := s.Text[field]; fn != nil {
		if v := fn(rec); v != "" {
			return []string{v}, true
		}
		return nil, true
	}
	if fn := s.Lists[field]; fn != nil {
		return fn(rec), true
	}
	return nil, false
}

// Accessor returns a values accessor for field, or nil if the field is unknown.
func (s *Schema[T]) Accessor(field string) func(T) []string {
	if s.Text[field] == nil && s.Lists[field] == nil {
		return nil
	}
	return func(rec T) []string {
		v, _ := s.Values(rec, field)
		return v
	}
}

// Match decides whether rec satisfies every active criterion. Inactive
// (wildcard) criteria always pass. A criterion naming a field the record
// does not have, or whose value is missing, does not match.
func (s *Schema[T]) Match(rec T, c Criteria) bool {
	if c.search != "" && !s.matchSearch(rec, c.search) {
		return false
	}

	for field, want := range c.equals {
		values, _ := s.Values(rec, field)
		if !slices.Contains(values, want) {
			return false
		}
	}

	for field, selected := range c.anyOf {
		values, _ := s.Values(rec, field)
		if !intersects(values, selected) {
			return false
		}
	}

	for field, limit := range c.max {
		v, ok := s.number(rec, field)
		if !ok || v > limit {
			return false
		}
	}

	for field, limit := range c.min {
		v, ok := s.number(rec, field)
		if !ok || v < limit {
			return false
		}
	}

	for field := range c.flags {
		fn := s.Flags[field]
		if fn == nil || !fn(rec) {
			return false
		}
	}

	return true
}

func (s *Schema[T]) matchSearch(rec T, term string) bool {
	term = strings.ToLower(term)
	for _, field := range s.Search {
		values, _ := s.Values(rec, field)
		for _, v := range values {
			if strings.Contains(strings.ToLower(v), term) {
				return true
			}
		}
	}
	return false
}

func (s *Schema[T]) number(rec T, field string) (float64, bool) {
	fn := s.Numbers[field]
	if fn == nil {
		return 0, false
	}
	return fn(rec)
}

// Apply returns the derived view: the records of src matching c, in source
// order. src is never modified.
func Apply[T any](s *Schema[T], src []T, c Criteria) []T {
	out := make([]T, 0, len(src))
	for _, rec := range src {
		if s.Match(rec, c) {
			out = append(out, rec)
		}
	}
	return out
}

func intersects(values, selected []string) bool {
	for _, v := range values {
		if slices.Contains(selected, v) {
			return true
		}
	}
	return false
}
