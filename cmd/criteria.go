package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"exchange-catalog/services"
)

// fieldSet is the part of a schema flag parsing needs.
type fieldSet interface {
	Has(field string) bool
	Fields() []string
}

// filterFlags are the raw --search/--where/--any/--max/--min/--flag values.
type filterFlags struct {
	search string
	where  []string
	anyOf  []string
	max    []string
	min    []string
	flags  []string
}

// register binds the filter flags to f.
func (o *filterFlags) register(f *pflag.FlagSet) {
	f.StringVarP(&o.search, "search", "s", "", "Case-insensitive text search")
	f.StringArrayVar(&o.where, "where", nil, "Exact match, field=value (repeatable)")
	f.StringArrayVar(&o.anyOf, "any", nil, "Match any of a list, field=a,b,c (repeatable)")
	f.StringArrayVar(&o.max, "max", nil, "Inclusive upper bound, field=n (repeatable)")
	f.StringArrayVar(&o.min, "min", nil, "Inclusive lower bound, field=n (repeatable)")
	f.StringArrayVar(&o.flags, "flag", nil, "Require a boolean field, field or field=false (repeatable)")
}

// criteria builds an immutable Criteria from the flags, rejecting fields
// the schema does not know.
func (f filterFlags) criteria(schema fieldSet) (services.Criteria, error) {
	c := services.NewCriteria().WithSearch(f.search)

	for _, kv := range f.where {
		field, value, err := splitPair(kv, schema)
		if err != nil {
			return c, fmt.Errorf("--where: %w", err)
		}
		c = c.WithEquals(field, value)
	}

	for _, kv := range f.anyOf {
		field, value, err := splitPair(kv, schema)
		if err != nil {
			return c, fmt.Errorf("--any: %w", err)
		}
		var values []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		c = c.WithAnyOf(field, values...)
	}

	for _, kv := range f.max {
		field, n, err := splitNumber(kv, schema)
		if err != nil {
			return c, fmt.Errorf("--max: %w", err)
		}
		c = c.WithMax(field, n)
	}

	for _, kv := range f.min {
		field, n, err := splitNumber(kv, schema)
		if err != nil {
			return c, fmt.Errorf("--min: %w", err)
		}
		c = c.WithMin(field, n)
	}

	for _, raw := range f.flags {
		field, value, found := strings.Cut(raw, "=")
		field = strings.TrimSpace(field)
		if err := checkField(field, schema); err != nil {
			return c, fmt.Errorf("--flag: %w", err)
		}
		on := true
		if found {
			b, err := strconv.ParseBool(strings.TrimSpace(value))
			if err != nil {
				return c, fmt.Errorf("--flag: %s: %q is not a boolean", field, value)
			}
			on = b
		}
		c = c.WithFlag(field, on)
	}

	return c, nil
}

func splitPair(raw string, schema fieldSet) (string, string, error) {
	field, value, found := strings.Cut(raw, "=")
	if !found {
		return "", "", fmt.Errorf("%q is not in field=value form", raw)
	}
	field = strings.TrimSpace(field)
	if err := checkField(field, schema); err != nil {
		return "", "", err
	}
	return field, strings.TrimSpace(value), nil
}

func splitNumber(raw string, schema fieldSet) (string, float64, error) {
	field, value, err := splitPair(raw, schema)
	if err != nil {
		return "", 0, err
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%s: %q is not a number", field, value)
	}
	return field, n, nil
}

func checkField(field string, schema fieldSet) error {
	if field == "" {
		return fmt.Errorf("empty field name")
	}
	if !schema.Has(field) {
		return fmt.Errorf("unknown field %q (known: %s)", field, strings.Join(schema.Fields(), ", "))
	}
	return nil
}
