package services

import (
	"fmt"
	"math"
	"sort"
)

// NotAvailable is displayed for aggregates over an empty population.
const NotAvailable = "N/A"

// CountDistinct returns the number of unique non-empty values across recs.
func CountDistinct[T any](recs []T, values func(T) []string) int {
	seen := make(map[string]struct{})
	for _, rec := range recs {
		for _, v := range values(rec) {
			if v != "" {
				seen[v] = struct{}{}
			}
		}
	}
	return len(seen)
}

// ValueCount is a value and how many times it occurred.
type ValueCount struct {
	Value string
	Count int
}

// Frequencies flattens values across recs and tallies them, most frequent
// first. Ties keep first-encountered order.
func Frequencies[T any](recs []T, values func(T) []string) []ValueCount {
	index := make(map[string]int)
	var counts []ValueCount
	for _, rec := range recs {
		for _, v := range values(rec) {
			if v == "" {
				continue
			}
			i, ok := index[v]
			if !ok {
				i = len(counts)
				index[v] = i
				counts = append(counts, ValueCount{Value: v})
			}
			counts[i].Count++
		}
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// TopN returns at most n of the most frequent values.
func TopN[T any](recs []T, values func(T) []string, n int) []ValueCount {
	counts := Frequencies(recs, values)
	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Top returns the single most frequent value. ok is false for empty input.
func Top[T any](recs []T, values func(T) []string) (ValueCount, bool) {
	counts := TopN(recs, values, 1)
	if len(counts) == 0 {
		return ValueCount{}, false
	}
	return counts[0], true
}

// Rate is a matching/total ratio shown as a whole percentage.
type Rate struct {
	Matching int
	Total    int
}

// RateOf counts the records satisfying pred.
func RateOf[T any](recs []T, pred func(T) bool) Rate {
	r := Rate{Total: len(recs)}
	for _, rec := range recs {
		if pred(rec) {
			r.Matching++
		}
	}
	return r
}

// Percent returns the rounded percentage; ok is false when Total is 0.
func (r Rate) Percent() (int, bool) {
	if r.Total <= 0 {
		return 0, false
	}
	return int(math.Round(float64(r.Matching) / float64(r.Total) * 100)), true
}

func (r Rate) String() string {
	p, ok := r.Percent()
	if !ok {
		return NotAvailable
	}
	return fmt.Sprintf("%d%%", p)
}

// Average returns the mean of the present values. ok is false when no
// record has a value.
func Average[T any](recs []T, value func(T) (float64, bool)) (float64, bool) {
	var total float64
	var n int
	for _, rec := range recs {
		if v, ok := value(rec); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return round2(total / float64(n)), true
}

// Sum adds up an integer field.
func Sum[T any](recs []T, value func(T) int) int {
	total := 0
	for _, rec := range recs {
		total += value(rec)
	}
	return total
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// FormatAmount renders an optional amount, or N/A.
func FormatAmount(v float64, ok bool, format string) string {
	if !ok || math.IsNaN(v) {
		return NotAvailable
	}
	return fmt.Sprintf(format, v)
}
