package services

import (
	"fmt"
	"strconv"
	"strings"

	"exchange-catalog/models"
)

// Column is one rendered/exported column of a listing table.
type Column[T any] struct {
	Name  string
	Value func(T) string
}

// StatCard is one summary number shown above a listing.
type StatCard struct {
	Label string
	Value string
}

// Catalog binds everything one listing page needs: where the data lives,
// how records are filtered, which dropdowns exist, and what is displayed.
type Catalog[T any] struct {
	Name     string
	Endpoint models.Endpoint
	PerPage  int
	Schema   *Schema[T]
	Key      func(T) string
	Tidy     func(*T)

	// Categories maps option fields to the plural used in "All <category>".
	Categories map[string]string
	Columns    []Column[T]
	Stats      func(all []T) []StatCard
}

// View creates a View over this catalog's schema and page size.
func (c *Catalog[T]) View() *View[T] {
	return NewView(c.Schema, c.PerPage)
}

// Row renders rec using the catalog's columns.
func (c *Catalog[T]) Row(rec T) []string {
	row := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		row[i] = col.Value(rec)
	}
	return row
}

// Header returns the column names.
func (c *Catalog[T]) Header() []string {
	header := make([]string, len(c.Columns))
	for i, col := range c.Columns {
		header[i] = col.Name
	}
	return header
}

// Find returns the record with the given id.
func (c *Catalog[T]) Find(recs []T, id string) (T, bool) {
	for _, rec := range recs {
		if c.Key(rec) == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}

func optFloat(p *float64) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

func optInt(p *int) (float64, bool) {
	if p == nil {
		return 0, false
	}
	return float64(*p), true
}

func fmtOptFloat(p *float64, format string) string {
	v, ok := optFloat(p)
	return FormatAmount(v, ok, format)
}

func joinList(values []string) string {
	return strings.Join(values, ", ")
}

// MentorCatalog backs the community page.
var MentorCatalog = &Catalog[models.Mentor]{
	Name:     "mentors",
	Endpoint: models.MentorsEndpoint,
	PerPage:  6,
	Schema: &Schema[models.Mentor]{
		Text: map[string]func(models.Mentor) string{
			"name":           func(m models.Mentor) string { return m.Name },
			"homeUniversity": func(m models.Mentor) string { return m.HomeUniversity },
			"hostUniversity": func(m models.Mentor) string { return m.HostUniversity },
			"hostCountry":    func(m models.Mentor) string { return m.HostCountry },
			"hostCity":       func(m models.Mentor) string { return m.HostCity },
			"fieldOfStudy":   func(m models.Mentor) string { return m.FieldOfStudy },
			"exchangeYear":   func(m models.Mentor) string { return m.ExchangeYear },
			"bio":            func(m models.Mentor) string { return m.Bio },
		},
		Lists: map[string]func(models.Mentor) []string{
			"specializations": func(m models.Mentor) []string { return m.Specializations },
			"languages":       func(m models.Mentor) []string { return m.Languages },
		},
		Flags: map[string]func(models.Mentor) bool{
			"available": func(m models.Mentor) bool { return m.Available },
		},
		Search: []string{"name", "hostCity", "hostUniversity", "homeUniversity", "bio", "specializations"},
	},
	Key: func(m models.Mentor) string { return m.ID },
	Tidy: func(m *models.Mentor) {
		m.ID = strings.TrimSpace(m.ID)
		m.Name = normaliseText(m.Name)
		m.HomeUniversity = normaliseText(m.HomeUniversity)
		m.HostUniversity = normaliseText(m.HostUniversity)
		m.HostCountry = normaliseText(m.HostCountry)
		m.HostCity = normaliseText(m.HostCity)
		m.FieldOfStudy = normaliseText(m.FieldOfStudy)
		m.Specializations = normaliseList(m.Specializations)
		m.Languages = normaliseList(m.Languages)
	},
	Categories: map[string]string{
		"hostCountry":     "Countries",
		"hostUniversity":  "Universities",
		"fieldOfStudy":    "Fields",
		"specializations": "Specializations",
		"languages":       "Languages",
		"exchangeYear":    "Years",
	},
	Columns: []Column[models.Mentor]{
		{"ID", func(m models.Mentor) string { return m.ID }},
		{"Name", func(m models.Mentor) string { return m.Name }},
		{"Host university", func(m models.Mentor) string { return m.HostUniversity }},
		{"Country", func(m models.Mentor) string { return m.HostCountry }},
		{"Specializations", func(m models.Mentor) string { return joinList(m.Specializations) }},
	},
	Stats: func(all []models.Mentor) []StatCard {
		top := NotAvailable
		if vc, ok := Top(all, func(m models.Mentor) []string { return m.Specializations }); ok {
			top = vc.Value
		}
		return []StatCard{
			{"Mentors", strconv.Itoa(len(all))},
			{"Host countries", strconv.Itoa(CountDistinct(all, Single(func(m models.Mentor) string { return m.HostCountry })))},
			{"Host universities", strconv.Itoa(CountDistinct(all, Single(func(m models.Mentor) string { return m.HostUniversity })))},
			{"Top specialization", top},
		}
	},
}

// AccommodationCatalog backs the accommodations page.
var AccommodationCatalog = &Catalog[models.Accommodation]{
	Name:     "accommodations",
	Endpoint: models.AccommodationsEndpoint,
	PerPage:  9,
	Schema: &Schema[models.Accommodation]{
		Text: map[string]func(models.Accommodation) string{
			"title":             func(a models.Accommodation) string { return a.Title },
			"city":              func(a models.Accommodation) string { return a.City },
			"country":           func(a models.Accommodation) string { return a.Country },
			"university":        func(a models.Accommodation) string { return a.University },
			"accommodationType": func(a models.Accommodation) string { return a.Type },
			"platform":          func(a models.Accommodation) string { return a.Platform },
			"description":       func(a models.Accommodation) string { return a.Description },
			"wouldRecommend":    func(a models.Accommodation) string { return string(a.WouldRecommend) },
		},
		Lists: map[string]func(models.Accommodation) []string{
			"amenities": func(a models.Accommodation) []string { return a.Amenities },
		},
		Numbers: map[string]func(models.Accommodation) (float64, bool){
			"monthlyRent": func(a models.Accommodation) (float64, bool) { return optFloat(a.MonthlyRent) },
			"rating":      func(a models.Accommodation) (float64, bool) { return optFloat(a.Rating) },
		},
		Flags: map[string]func(models.Accommodation) bool{
			"recommended": func(a models.Accommodation) bool { return a.WouldRecommend.Recommends() },
		},
		Search: []string{"title", "city", "university", "description", "amenities"},
	},
	Key: func(a models.Accommodation) string { return a.ID },
	Tidy: func(a *models.Accommodation) {
		a.ID = strings.TrimSpace(a.ID)
		a.Title = normaliseText(a.Title)
		a.City = normaliseText(a.City)
		a.Country = normaliseText(a.Country)
		a.University = normaliseText(a.University)
		a.Type = strings.ToLower(normaliseText(a.Type))
		a.Platform = normaliseText(a.Platform)
		a.Amenities = normaliseList(a.Amenities)
	},
	Categories: map[string]string{
		"city":              "Cities",
		"country":           "Countries",
		"university":        "Universities",
		"accommodationType": "Types",
		"platform":          "Platforms",
		"amenities":         "Amenities",
	},
	Columns: []Column[models.Accommodation]{
		{"ID", func(a models.Accommodation) string { return a.ID }},
		{"Title", func(a models.Accommodation) string { return a.Title }},
		{"City", func(a models.Accommodation) string { return a.City }},
		{"Type", func(a models.Accommodation) string { return a.Type }},
		{"Rent", func(a models.Accommodation) string { return fmtOptFloat(a.MonthlyRent, "%.0f") }},
		{"Rating", func(a models.Accommodation) string { return fmtOptFloat(a.Rating, "%.1f") }},
	},
	Stats: func(all []models.Accommodation) []StatCard {
		avg, ok := Average(all, func(a models.Accommodation) (float64, bool) { return optFloat(a.MonthlyRent) })
		return []StatCard{
			{"Listings", strconv.Itoa(len(all))},
			{"Average rent", FormatAmount(avg, ok, "%.0f/month")},
			{"Cities", strconv.Itoa(CountDistinct(all, Single(func(a models.Accommodation) string { return a.City })))},
			{"Would recommend", RateOf(all, func(a models.Accommodation) bool { return a.WouldRecommend.Recommends() }).String()},
		}
	},
}

// UniversityCatalog backs the universities/partnerships page.
var UniversityCatalog = &Catalog[models.University]{
	Name:     "universities",
	Endpoint: models.UniversitiesEndpoint,
	PerPage:  9,
	Schema: &Schema[models.University]{
		Text: map[string]func(models.University) string{
			"name":            func(u models.University) string { return u.Name },
			"city":            func(u models.University) string { return u.City },
			"country":         func(u models.University) string { return u.Country },
			"partnershipType": func(u models.University) string { return u.PartnershipType },
			"description":     func(u models.University) string { return u.Description },
		},
		Lists: map[string]func(models.University) []string{
			"faculties": func(u models.University) []string { return u.Faculties },
			"languages": func(u models.University) []string { return u.Languages },
		},
		Numbers: map[string]func(models.University) (float64, bool){
			"exchangeSpots": func(u models.University) (float64, bool) { return optInt(u.ExchangeSpots) },
			"rating":        func(u models.University) (float64, bool) { return optFloat(u.Rating) },
		},
		Search: []string{"name", "city", "country", "description", "faculties"},
	},
	Key: func(u models.University) string { return u.ID },
	Tidy: func(u *models.University) {
		u.ID = strings.TrimSpace(u.ID)
		u.Name = normaliseText(u.Name)
		u.City = normaliseText(u.City)
		u.Country = normaliseText(u.Country)
		u.PartnershipType = normaliseText(u.PartnershipType)
		u.Faculties = normaliseList(u.Faculties)
		u.Languages = normaliseList(u.Languages)
	},
	Categories: map[string]string{
		"country":         "Countries",
		"city":            "Cities",
		"partnershipType": "Partnership Types",
		"faculties":       "Faculties",
		"languages":       "Languages",
	},
	Columns: []Column[models.University]{
		{"ID", func(u models.University) string { return u.ID }},
		{"Name", func(u models.University) string { return u.Name }},
		{"City", func(u models.University) string { return u.City }},
		{"Country", func(u models.University) string { return u.Country }},
		{"Faculties", func(u models.University) string { return strconv.Itoa(len(u.Faculties)) }},
	},
	Stats: func(all []models.University) []StatCard {
		top := NotAvailable
		if vc, ok := Top(all, Single(func(u models.University) string { return u.Country })); ok {
			top = fmt.Sprintf("%s (%d)", vc.Value, vc.Count)
		}
		return []StatCard{
			{"Partner universities", strconv.Itoa(len(all))},
			{"Countries", strconv.Itoa(CountDistinct(all, Single(func(u models.University) string { return u.Country })))},
			{"Faculties", strconv.Itoa(CountDistinct(all, func(u models.University) []string { return u.Faculties }))},
			{"Top country", top},
		}
	},
}

// ExperienceCatalog backs the course-matching page.
var ExperienceCatalog = &Catalog[models.CourseMatchingExperience]{
	Name:     "experiences",
	Endpoint: models.ExperiencesEndpoint,
	PerPage:  6,
	Schema: &Schema[models.CourseMatchingExperience]{
		Text: map[string]func(models.CourseMatchingExperience) string{
			"homeUniversity": func(e models.CourseMatchingExperience) string { return e.HomeUniversity },
			"hostUniversity": func(e models.CourseMatchingExperience) string { return e.HostUniversity },
			"hostCountry":    func(e models.CourseMatchingExperience) string { return e.HostCountry },
			"fieldOfStudy":   func(e models.CourseMatchingExperience) string { return e.FieldOfStudy },
			"semester":       func(e models.CourseMatchingExperience) string { return e.Semester },
			"difficulty":     func(e models.CourseMatchingExperience) string { return e.Difficulty },
			"notes":          func(e models.CourseMatchingExperience) string { return e.Notes },
			"wouldRecommend": func(e models.CourseMatchingExperience) string { return string(e.WouldRecommend) },
		},
		Lists: map[string]func(models.CourseMatchingExperience) []string{
			"courses": func(e models.CourseMatchingExperience) []string { return e.Courses },
		},
		Numbers: map[string]func(models.CourseMatchingExperience) (float64, bool){
			"matchedCourses": func(e models.CourseMatchingExperience) (float64, bool) {
				return float64(e.MatchedCourses), true
			},
		},
		Flags: map[string]func(models.CourseMatchingExperience) bool{
			"recommended": func(e models.CourseMatchingExperience) bool { return e.WouldRecommend.Recommends() },
		},
		Search: []string{"hostUniversity", "homeUniversity", "fieldOfStudy", "notes", "courses"},
	},
	Key: func(e models.CourseMatchingExperience) string { return e.ID },
	Tidy: func(e *models.CourseMatchingExperience) {
		e.ID = strings.TrimSpace(e.ID)
		e.HomeUniversity = normaliseText(e.HomeUniversity)
		e.HostUniversity = normaliseText(e.HostUniversity)
		e.HostCountry = normaliseText(e.HostCountry)
		e.FieldOfStudy = normaliseText(e.FieldOfStudy)
		e.Courses = normaliseList(e.Courses)
		if e.MatchedCourses < 0 {
			e.MatchedCourses = 0
		}
		if e.TotalCourses < e.MatchedCourses {
			e.TotalCourses = e.MatchedCourses
		}
	},
	Categories: map[string]string{
		"hostUniversity": "Universities",
		"hostCountry":    "Countries",
		"fieldOfStudy":   "Fields",
		"semester":       "Semesters",
		"difficulty":     "Difficulties",
	},
	Columns: []Column[models.CourseMatchingExperience]{
		{"ID", func(e models.CourseMatchingExperience) string { return e.ID }},
		{"Host university", func(e models.CourseMatchingExperience) string { return e.HostUniversity }},
		{"Field", func(e models.CourseMatchingExperience) string { return e.FieldOfStudy }},
		{"Matched", func(e models.CourseMatchingExperience) string {
			return fmt.Sprintf("%d/%d", e.MatchedCourses, e.TotalCourses)
		}},
		{"Recommend", func(e models.CourseMatchingExperience) string { return string(e.WouldRecommend) }},
	},
	Stats: func(all []models.CourseMatchingExperience) []StatCard {
		match := Rate{
			Matching: Sum(all, func(e models.CourseMatchingExperience) int { return e.MatchedCourses }),
			Total:    Sum(all, func(e models.CourseMatchingExperience) int { return e.TotalCourses }),
		}
		top := NotAvailable
		if vc, ok := Top(all, Single(func(e models.CourseMatchingExperience) string { return e.HostUniversity })); ok {
			top = vc.Value
		}
		return []StatCard{
			{"Submissions", strconv.Itoa(len(all))},
			{"Courses matched", match.String()},
			{"Would recommend", RateOf(all, func(e models.CourseMatchingExperience) bool { return e.WouldRecommend.Recommends() }).String()},
			{"Top host university", top},
		}
	},
}
