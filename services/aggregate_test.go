package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"exchange-catalog/models"
)

func TestOptionsAreSortedDistinctAndPrefixed(t *testing.T) {
	opts := Options(sampleMentors(), Single(func(m models.Mentor) string { return m.HostCountry }), "Countries")

	want := []Option{
		{Value: "all", Label: "All Countries"},
		{Value: "Czechia", Label: "Czechia"},
		{Value: "France", Label: "France"},
		{Value: "Spain", Label: "Spain"},
	}
	assert.Equal(t, want, opts)
}

func TestOptionsFlattenArrayFields(t *testing.T) {
	unis := []models.University{
		{ID: "u1", Faculties: []string{"Law", "Medicine"}},
		{ID: "u2", Faculties: []string{"Engineering", "Law"}},
		{ID: "u3"},
	}
	opts := Options(unis, UniversityCatalog.Schema.Accessor("faculties"), "Faculties")

	var values []string
	for _, o := range opts {
		values = append(values, o.Value)
	}
	assert.Equal(t, []string{"all", "Engineering", "Law", "Medicine"}, values)
}

func TestOptionsOnEmptySource(t *testing.T) {
	opts := Options[models.Mentor](nil, Single(func(m models.Mentor) string { return m.HostCountry }), "Countries")
	assert.Equal(t, []Option{{Value: "all", Label: "All Countries"}}, opts)
}

func TestCountDistinct(t *testing.T) {
	mentors := sampleMentors()
	if got := CountDistinct(mentors, Single(func(m models.Mentor) string { return m.HostCountry })); got != 3 {
		t.Errorf("distinct countries: got %d, want 3", got)
	}
	if got := CountDistinct(mentors, func(m models.Mentor) []string { return m.Specializations }); got != 3 {
		t.Errorf("distinct specializations: got %d, want 3", got)
	}
}

func TestTopByFrequency(t *testing.T) {
	top, ok := Top(sampleMentors(), func(m models.Mentor) []string { return m.Specializations })
	assert.True(t, ok)
	// Housing and Visa both occur twice; Housing was seen first.
	assert.Equal(t, ValueCount{Value: "Housing", Count: 2}, top)

	_, ok = Top[models.Mentor](nil, func(m models.Mentor) []string { return m.Specializations })
	assert.False(t, ok)
}

func TestTopNKeepsFirstEncounteredOrderOnTies(t *testing.T) {
	recs := [][]string{{"b"}, {"a"}, {"c", "a"}, {"b"}, {"c"}}
	got := TopN(recs, func(r []string) []string { return r }, 2)
	assert.Equal(t, []ValueCount{{"b", 2}, {"a", 2}}, got)
}

func TestRate(t *testing.T) {
	tests := []struct {
		rate Rate
		want string
	}{
		{Rate{Matching: 0, Total: 0}, "N/A"},
		{Rate{Matching: 1, Total: 3}, "33%"},
		{Rate{Matching: 2, Total: 3}, "67%"},
		{Rate{Matching: 4, Total: 4}, "100%"},
	}
	for _, tt := range tests {
		if got := tt.rate.String(); got != tt.want {
			t.Errorf("%+v: got %q, want %q", tt.rate, got, tt.want)
		}
	}
}

func TestAggregatesOnEmptyInput(t *testing.T) {
	_, ok := Average[models.Accommodation](nil, func(a models.Accommodation) (float64, bool) { return optFloat(a.MonthlyRent) })
	assert.False(t, ok)

	for _, cards := range [][]StatCard{
		MentorCatalog.Stats(nil),
		AccommodationCatalog.Stats(nil),
		UniversityCatalog.Stats(nil),
		ExperienceCatalog.Stats(nil),
	} {
		for _, c := range cards {
			assert.NotContains(t, c.Value, "NaN", c.Label)
		}
	}

	cards := AccommodationCatalog.Stats(nil)
	assert.Equal(t, "0", cards[0].Value)
	assert.Equal(t, NotAvailable, cards[1].Value)
	assert.Equal(t, NotAvailable, cards[3].Value)
}

func TestAccommodationStats(t *testing.T) {
	src := []models.Accommodation{
		{ID: "1", City: "Madrid", MonthlyRent: ptr(500.0), WouldRecommend: models.RecommendYes},
		{ID: "2", City: "Madrid", MonthlyRent: ptr(700.0), WouldRecommend: models.RecommendNo},
		{ID: "3", City: "Porto", WouldRecommend: models.RecommendYes},
	}
	cards := AccommodationCatalog.Stats(src)
	assert.Equal(t, []StatCard{
		{"Listings", "3"},
		{"Average rent", "600/month"},
		{"Cities", "2"},
		{"Would recommend", "67%"},
	}, cards)
}

func TestExperienceStats(t *testing.T) {
	src := []models.CourseMatchingExperience{
		{ID: "1", HostUniversity: "KU Leuven", MatchedCourses: 3, TotalCourses: 4, WouldRecommend: models.RecommendYes},
		{ID: "2", HostUniversity: "KU Leuven", MatchedCourses: 1, TotalCourses: 4, WouldRecommend: models.RecommendMaybe},
	}
	cards := ExperienceCatalog.Stats(src)
	assert.Equal(t, "2", cards[0].Value)
	assert.Equal(t, "50%", cards[1].Value)
	assert.Equal(t, "50%", cards[2].Value)
	assert.Equal(t, "KU Leuven", cards[3].Value)
}

func TestAveragesCardsWithoutSubmissions(t *testing.T) {
	cards := AveragesCards(models.DestinationAverages{City: "Oslo", AvgRent: ptr(900.0)})
	for _, c := range cards[1:] {
		assert.Equal(t, NotAvailable, c.Value, c.Label)
	}
}
