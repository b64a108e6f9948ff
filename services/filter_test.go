package services

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exchange-catalog/models"
)

func ptr[V any](v V) *V { return &v }

func sampleMentors() []models.Mentor {
	return []models.Mentor{
		{ID: "m1", Name: "Ana Ruiz", HostCountry: "Spain", HostCity: "Madrid", HostUniversity: "UCM",
			Bio: "Loves tapas", Specializations: []string{"Housing", "Visa"}, Available: true},
		{ID: "m2", Name: "Ben Ortiz", HostCountry: "Spain", HostCity: "Barcelona", HostUniversity: "UPF",
			Specializations: []string{"Courses"}},
		{ID: "m3", Name: "Chloe Martin", HostCountry: "France", HostCity: "Lyon", HostUniversity: "Lyon 2",
			Bio: "Ask me about Madrid too", Specializations: []string{"Housing"}},
		{ID: "m4", Name: "Dario Rossi", HostCountry: "Spain", HostCity: "Valencia", HostUniversity: "UV",
			Specializations: []string{"Visa"}, Available: true},
		{ID: "m5", Name: "Eva Novak", HostCountry: "Czechia", HostCity: "Prague", HostUniversity: "Charles"},
	}
}

func sampleAccommodations() []models.Accommodation {
	var out []models.Accommodation
	for i := 0; i < 10; i++ {
		rent := float64(400 + i*100)
		out = append(out, models.Accommodation{
			ID:          fmt.Sprintf("a%d", i),
			Title:       fmt.Sprintf("Room %d", i),
			City:        []string{"Madrid", "Lisbon"}[i%2],
			MonthlyRent: ptr(rent),
		})
	}
	return out
}

func TestWildcardCriteriaMatchEverything(t *testing.T) {
	schema := MentorCatalog.Schema
	wildcards := []Criteria{
		NewCriteria(),
		NewCriteria().WithSearch("   "),
		NewCriteria().WithEquals("hostCountry", "all"),
		NewCriteria().WithEquals("hostCountry", "ALL"),
		NewCriteria().WithEquals("hostCountry", ""),
		NewCriteria().WithAnyOf("specializations"),
	}

	for i, c := range wildcards {
		assert.True(t, c.IsZero(), "criteria %d should be inactive", i)
		for _, m := range sampleMentors() {
			assert.True(t, schema.Match(m, c), "criteria %d rejected %s", i, m.ID)
		}
	}
}

func TestSearchMatchesAnySearchableField(t *testing.T) {
	schema := MentorCatalog.Schema
	terms := []string{"madrid", "HOUSING", "ucm", "tapas", "zzz", "a"}

	for _, term := range terms {
		c := NewCriteria().WithSearch(term)
		for _, m := range sampleMentors() {
			want := false
			for _, field := range schema.Search {
				values, _ := schema.Values(m, field)
				for _, v := range values {
					if strings.Contains(strings.ToLower(v), strings.ToLower(term)) {
						want = true
					}
				}
			}
			if got := schema.Match(m, c); got != want {
				t.Errorf("search %q on %s: got %v, want %v", term, m.ID, got, want)
			}
		}
	}
}

func TestSearchDoesNotLookAtNonSearchFields(t *testing.T) {
	// hostCountry is filterable but not searchable.
	got := Apply(MentorCatalog.Schema, sampleMentors(), NewCriteria().WithSearch("czechia"))
	assert.Empty(t, got)
}

func TestFilterByHostCountry(t *testing.T) {
	got := Apply(MentorCatalog.Schema, sampleMentors(), NewCriteria().WithEquals("hostCountry", "Spain"))

	require.Len(t, got, 3)
	for _, m := range got {
		assert.Equal(t, "Spain", m.HostCountry)
	}
}

func TestFilterByMaxBudget(t *testing.T) {
	got := Apply(AccommodationCatalog.Schema, sampleAccommodations(), NewCriteria().WithMax("monthlyRent", 700))

	var ids []string
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	if diff := cmp.Diff([]string{"a0", "a1", "a2", "a3"}, ids); diff != "" {
		t.Errorf("derived view mismatch (-want +got):\n%s", diff)
	}
}

func TestNumericThresholdsAreInclusive(t *testing.T) {
	src := sampleAccommodations()
	c := NewCriteria().WithMin("monthlyRent", 500).WithMax("monthlyRent", 500)
	got := Apply(AccommodationCatalog.Schema, src, c)
	require.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)
}

func TestMissingFieldsDoNotMatch(t *testing.T) {
	src := []models.Accommodation{
		{ID: "x", Title: "No rent given"},
		{ID: "y", Title: "Cheap", MonthlyRent: ptr(300.0)},
	}
	schema := AccommodationCatalog.Schema

	got := Apply(schema, src, NewCriteria().WithMax("monthlyRent", 1000))
	require.Len(t, got, 1)
	assert.Equal(t, "y", got[0].ID)

	// An unknown field never matches, a wildcard on it always does.
	assert.Empty(t, Apply(schema, src, NewCriteria().WithEquals("noSuchField", "x")))
	assert.Empty(t, Apply(schema, src, NewCriteria().WithMin("noSuchField", 1)))
	assert.Len(t, Apply(schema, src, NewCriteria().WithEquals("noSuchField", "all")), 2)
}

func TestMultiSelectIntersection(t *testing.T) {
	schema := MentorCatalog.Schema
	got := Apply(schema, sampleMentors(), NewCriteria().WithAnyOf("specializations", "Visa", "Courses"))

	var ids []string
	for _, m := range got {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"m1", "m2", "m4"}, ids)
}

func TestCriteriaCombineWithAnd(t *testing.T) {
	c := NewCriteria().
		WithEquals("hostCountry", "Spain").
		WithAnyOf("specializations", "Visa").
		WithFlag("available", true)
	got := Apply(MentorCatalog.Schema, sampleMentors(), c)

	require.Len(t, got, 2)
	assert.Equal(t, "m1", got[0].ID)
	assert.Equal(t, "m4", got[1].ID)

	got = Apply(MentorCatalog.Schema, sampleMentors(), c.WithSearch("valencia"))
	require.Len(t, got, 1)
	assert.Equal(t, "m4", got[0].ID)
}

func TestDerivedViewNeverGrowsAndIsIdempotent(t *testing.T) {
	schema := MentorCatalog.Schema
	src := sampleMentors()
	criteria := []Criteria{
		NewCriteria(),
		NewCriteria().WithSearch("a"),
		NewCriteria().WithEquals("hostCountry", "Spain"),
		NewCriteria().WithAnyOf("specializations", "Housing").WithSearch("madrid"),
	}

	for _, c := range criteria {
		once := Apply(schema, src, c)
		assert.LessOrEqual(t, len(once), len(src))
		twice := Apply(schema, once, c)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("re-filtering changed the view (-once +twice):\n%s", diff)
		}
	}
}

func TestCriteriaAreImmutable(t *testing.T) {
	base := NewCriteria().WithEquals("hostCountry", "Spain")
	derived := base.WithEquals("hostCountry", "France").WithMax("rating", 4)

	assert.Equal(t, "Spain", base.Equals("hostCountry"))
	assert.Equal(t, "France", derived.Equals("hostCountry"))
	assert.False(t, base.Equal(derived))
	assert.True(t, base.Equal(NewCriteria().WithEquals("hostCountry", "Spain")))
	assert.True(t, derived.WithoutMax("rating").WithEquals("hostCountry", "Spain").Equal(base))
}

func TestCatalogSchemasAreValid(t *testing.T) {
	require.NoError(t, MentorCatalog.Schema.Validate())
	require.NoError(t, AccommodationCatalog.Schema.Validate())
	require.NoError(t, UniversityCatalog.Schema.Validate())
	require.NoError(t, ExperienceCatalog.Schema.Validate())

	bad := &Schema[models.Mentor]{Search: []string{"missing"}}
	assert.Error(t, bad.Validate())
}

func TestSchemaFields(t *testing.T) {
	fields := AccommodationCatalog.Schema.Fields()
	assert.Contains(t, fields, "monthlyRent")
	assert.Contains(t, fields, "amenities")
	assert.True(t, slices.IsSorted(fields))

	assert.True(t, AccommodationCatalog.Schema.Has("recommended"))
	assert.False(t, AccommodationCatalog.Schema.Has("hostCountry"))

	// Every category a catalog offers options for must be a known field.
	for field := range MentorCatalog.Categories {
		assert.True(t, MentorCatalog.Schema.Has(field), field)
	}
	for field := range AccommodationCatalog.Categories {
		assert.True(t, AccommodationCatalog.Schema.Has(field), field)
	}
	for field := range UniversityCatalog.Categories {
		assert.True(t, UniversityCatalog.Schema.Has(field), field)
	}
	for field := range ExperienceCatalog.Categories {
		assert.True(t, ExperienceCatalog.Schema.Has(field), field)
	}
}
