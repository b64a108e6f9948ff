package services

// View owns the state of one listing page: the source records, the active
// criteria and the current page. The derived view and the option lists are
// memoized and recomputed only when their inputs change. A View is not safe
// for concurrent use.
type View[T any] struct {
	schema  *Schema[T]
	perPage int

	source    []T
	sourceGen uint64
	criteria  Criteria
	page      int

	derived      []T
	derivedValid bool
	options      map[string][]Option
	optionsGen   uint64
}

// NewView creates an empty View with perPage records per page.
func NewView[T any](schema *Schema[T], perPage int) *View[T] {
	return &View[T]{schema: schema, perPage: perPage, page: 1}
}

// SetSource replaces the source records, e.g. after a fetch completes.
func (v *View[T]) SetSource(src []T) {
	v.source = src
	v.sourceGen++
	v.derivedValid = false
	v.page = ClampPage(v.page, TotalPages(len(v.Derived()), v.perPage))
}

// Source returns the unfiltered records.
func (v *View[T]) Source() []T { return v.source }

// SourceGeneration increments on every SetSource.
func (v *View[T]) SourceGeneration() uint64 { return v.sourceGen }

// Criteria returns the active criteria.
func (v *View[T]) Criteria() Criteria { return v.criteria }

// SetCriteria replaces the criteria and returns to page 1.
func (v *View[T]) SetCriteria(c Criteria) {
	v.criteria = c
	v.derivedValid = false
	v.page = 1
}

// Update applies fn to the current criteria; see SetCriteria.
func (v *View[T]) Update(fn func(Criteria) Criteria) {
	v.SetCriteria(fn(v.criteria))
}

// Reset clears every criterion.
func (v *View[T]) Reset() {
	v.SetCriteria(NewCriteria())
}

// Derived returns the records matching the criteria, recomputing only when
// the source or criteria changed since the last call.
func (v *View[T]) Derived() []T {
	if !v.derivedValid {
		v.derived = Apply(v.schema, v.source, v.criteria)
		v.derivedValid = true
	}
	return v.derived
}

// SetPage moves to page, resetting to 1 if it is out of range.
func (v *View[T]) SetPage(page int) {
	v.page = ClampPage(page, TotalPages(len(v.Derived()), v.perPage))
}

// CurrentPage returns the 1-indexed current page.
func (v *View[T]) CurrentPage() int { return v.page }

// Page returns the current page of the derived view.
func (v *View[T]) Page() Page[T] {
	return Paginate(v.Derived(), v.perPage, v.page)
}

// Options returns the dropdown options for field labelled with category,
// memoized per source generation. Unknown fields yield only the wildcard
// option.
func (v *View[T]) Options(field, category string) []Option {
	if v.options == nil || v.optionsGen != v.sourceGen {
		v.options = make(map[string][]Option)
		v.optionsGen = v.sourceGen
	}
	key := field + "\x00" + category
	if opts, ok := v.options[key]; ok {
		return opts
	}

	values := v.schema.Accessor(field)
	if values == nil {
		values = func(T) []string { return nil }
	}
	opts := Options(v.source, values, category)
	v.options[key] = opts
	return opts
}
