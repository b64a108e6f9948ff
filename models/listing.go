package models

// Mentor is a community member offering mentorship about their exchange.
type Mentor struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	HomeUniversity  string   `json:"homeUniversity"`
	HostUniversity  string   `json:"hostUniversity"`
	HostCountry     string   `json:"hostCountry"`
	HostCity        string   `json:"hostCity"`
	FieldOfStudy    string   `json:"fieldOfStudy"`
	ExchangeYear    string   `json:"exchangeYear"`
	Bio             string   `json:"bio"`
	Specializations []string `json:"specializations"`
	Languages       []string `json:"languages"`
	Available       bool     `json:"availableForMentoring"`
}

// Accommodation is a student's housing experience at a destination.
type Accommodation struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	City           string         `json:"city"`
	Country        string         `json:"country"`
	University     string         `json:"university"`
	Type           string         `json:"accommodationType"`
	Platform       string         `json:"platform"`
	Description    string         `json:"description"`
	Amenities      []string       `json:"amenities"`
	MonthlyRent    *float64       `json:"monthlyRent"`
	Rating         *float64       `json:"rating"`
	WouldRecommend Recommendation `json:"wouldRecommend"`
}

// University is a partner institution available for exchange.
type University struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	PartnershipType string   `json:"partnershipType"`
	Description     string   `json:"description"`
	Faculties       []string `json:"faculties"`
	Languages       []string `json:"languages"`
	ExchangeSpots   *int     `json:"exchangeSpots"`
	Rating          *float64 `json:"rating"`
}

// CourseMatchingExperience is a submitted report of how home courses were
// matched against courses at a host university.
type CourseMatchingExperience struct {
	ID             string         `json:"id"`
	HomeUniversity string         `json:"homeUniversity"`
	HostUniversity string         `json:"hostUniversity"`
	HostCountry    string         `json:"hostCountry"`
	FieldOfStudy   string         `json:"fieldOfStudy"`
	Semester       string         `json:"semester"`
	Difficulty     string         `json:"difficulty"`
	Notes          string         `json:"notes"`
	Courses        []string       `json:"courses"`
	MatchedCourses int            `json:"matchedCourses"`
	TotalCourses   int            `json:"totalCourses"`
	WouldRecommend Recommendation `json:"wouldRecommend"`
}

// DestinationAverages is the computed-averages object for one destination.
type DestinationAverages struct {
	DestinationID   string   `json:"destinationId"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Submissions     int      `json:"totalSubmissions"`
	AvgRent         *float64 `json:"avgRent"`
	AvgLivingCost   *float64 `json:"avgLivingCost"`
	AvgRating       *float64 `json:"avgRating"`
	RecommendedRate *float64 `json:"recommendationRate"`
}

// Destination is a city available as an exchange destination.
type Destination struct {
	ID      string `json:"id"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// CourseMatchingInsights is the summary object for the course-matching page.
type CourseMatchingInsights struct {
	TotalSubmissions int      `json:"totalSubmissions"`
	SuccessRate      *float64 `json:"successRate"`
	TopUniversities  []string `json:"topUniversities"`
}

// PartnershipAnalytics is the summary object for the partnerships page.
type PartnershipAnalytics struct {
	TotalPartners int            `json:"totalPartners"`
	Countries     int            `json:"countries"`
	ByType        map[string]int `json:"byType"`
}
