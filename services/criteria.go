package services

import (
	"slices"
	"strings"
)

// WildcardValue is the option value meaning "no constraint".
const WildcardValue = "all"

// IsWildcard reports whether an enum criterion value places no constraint.
func IsWildcard(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, WildcardValue)
}

// Criteria is an immutable set of filter criteria. The zero value (or
// NewCriteria) matches everything. Every With* method returns a copy, so
// "clear all" is a single assignment of NewCriteria().
type Criteria struct {
	search string
	equals map[string]string
	anyOf  map[string][]string
	max    map[string]float64
	min    map[string]float64
	flags  map[string]bool
}

// NewCriteria returns criteria with every control at its "no filter" default.
func NewCriteria() Criteria {
	return Criteria{}
}

// WithSearch sets the free-text search term.
func (c Criteria) WithSearch(term string) Criteria {
	c.search = strings.TrimSpace(term)
	return c
}

// WithEquals constrains field to value. A wildcard value removes the constraint.
func (c Criteria) WithEquals(field, value string) Criteria {
	c.equals = cloneMap(c.equals)
	if IsWildcard(value) {
		delete(c.equals, field)
	} else {
		c.equals[field] = strings.TrimSpace(value)
	}
	return c
}

// WithAnyOf sets a multi-select criterion. An empty selection removes it.
func (c Criteria) WithAnyOf(field string, values ...string) Criteria {
	c.anyOf = cloneMap(c.anyOf)
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(kept, v) {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(c.anyOf, field)
	} else {
		c.anyOf[field] = kept
	}
	return c
}

// WithMax requires field <= limit.
func (c Criteria) WithMax(field string, limit float64) Criteria {
	c.max = cloneMap(c.max)
	c.max[field] = limit
	return c
}

// WithoutMax removes the upper bound on field.
func (c Criteria) WithoutMax(field string) Criteria {
	c.max = cloneMap(c.max)
	delete(c.max, field)
	return c
}

// WithMin requires field >= limit.
func (c Criteria) WithMin(field string, limit float64) Criteria {
	c.min = cloneMap(c.min)
	c.min[field] = limit
	return c
}

// WithoutMin removes the lower bound on field.
func (c Criteria) WithoutMin(field string) Criteria {
	c.min = cloneMap(c.min)
	delete(c.min, field)
	return c
}

// WithFlag requires the boolean field to be true when on; off removes it.
func (c Criteria) WithFlag(field string, on bool) Criteria {
	c.flags = cloneMap(c.flags)
	if on {
		c.flags[field] = true
	} else {
		delete(c.flags, field)
	}
	return c
}

// Search returns the active search term.
func (c Criteria) Search() string { return c.search }

// Equals returns the active enum value for field, or "" when unconstrained.
func (c Criteria) Equals(field string) string { return c.equals[field] }

// AnyOf returns the active selection for field.
func (c Criteria) AnyOf(field string) []string { return slices.Clone(c.anyOf[field]) }

// IsZero reports whether no criterion is active.
func (c Criteria) IsZero() bool {
	return c.search == "" && len(c.equals) == 0 && len(c.anyOf) == 0 &&
		len(c.max) == 0 && len(c.min) == 0 && len(c.flags) == 0
}

// Equal reports whether both criteria constrain exactly the same things.
func (c Criteria) Equal(o Criteria) bool {
	if c.search != o.search || len(c.equals) != len(o.equals) || len(c.anyOf) != len(o.anyOf) ||
		len(c.max) != len(o.max) || len(c.min) != len(o.min) || len(c.flags) != len(o.flags) {
		return false
	}
	for k, v := range c.equals {
		if ov, ok := o.equals[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range c.anyOf {
		if ov, ok := o.anyOf[k]; !ok || !slices.Equal(v, ov) {
			return false
		}
	}
	for k, v := range c.max {
		if ov, ok := o.max[k]; !ok || ov != v {
			return false
		}
	}
	for k, v := range c.min {
		if ov, ok := o.min[k]; !ok || ov != v {
			return false
		}
	}
	for k := range c.flags {
		if !o.flags[k] {
			return false
		}
	}
	return true
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
