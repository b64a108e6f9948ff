package services

import "sort"

// Option is one choice in a filter dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options builds the dropdown choices for a field from the data itself:
// a synthetic "All <category>" wildcard followed by the sorted, duplicate-free
// non-empty values. values may flatten array fields.
func Options[T any](src []T, values func(T) []string, category string) []Option {
	seen := make(map[string]struct{})
	var distinct []string
	for _, rec := range src {
		for _, v := range values(rec) {
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			distinct = append(distinct, v)
		}
	}
	sort.Strings(distinct)

	opts := make([]Option, 0, len(distinct)+1)
	opts = append(opts, Option{Value: WildcardValue, Label: "All " + category})
	for _, v := range distinct {
		opts = append(opts, Option{Value: v, Label: v})
	}
	return opts
}

// Single adapts a scalar accessor for use with Options and the aggregates.
func Single[T any](fn func(T) string) func(T) []string {
	return func(rec T) []string {
		if v := fn(rec); v != "" {
			return []string{v}
		}
		return nil
	}
}
