package models

import (
	"net/url"
	"strings"
)

// Endpoint describes where a collection lives: the REST path returning
// {"<Collection>": [...]}, and the site page that embeds the same data.
// An empty Collection means the endpoint returns a single object.
type Endpoint struct {
	Path       string
	Page       string
	Collection string
}

var (
	MentorsEndpoint = Endpoint{
		Path: "/api/mentorship/members", Page: "/community", Collection: "mentors",
	}
	AccommodationsEndpoint = Endpoint{
		Path: "/api/accommodation/experiences", Page: "/accommodations", Collection: "experiences",
	}
	UniversityHousingEndpoint = Endpoint{
		Path: "/api/accommodation/university-housing", Page: "/accommodations", Collection: "housing",
	}
	UniversitiesEndpoint = Endpoint{
		Path: "/api/partnerships/universities", Page: "/universities", Collection: "universities",
	}
	ExperiencesEndpoint = Endpoint{
		Path: "/api/course-matching/experiences", Page: "/course-matching", Collection: "experiences",
	}
	DestinationsEndpoint = Endpoint{
		Path: "/api/destinations", Page: "/destinations", Collection: "destinations",
	}
	CourseInsightsEndpoint = Endpoint{
		Path: "/api/course-matching/insights", Page: "/course-matching",
	}
	PartnershipAnalyticsEndpoint = Endpoint{
		Path: "/api/partnerships/analytics", Page: "/universities",
	}
)

// DestinationAveragesEndpoint returns the averages endpoint for one
// destination. id is escaped as a single path segment, dot segments
// included.
func DestinationAveragesEndpoint(id string) Endpoint {
	seg := url.PathEscape(id)
	if seg == "." || seg == ".." {
		seg = strings.ReplaceAll(seg, ".", "%2E")
	}
	return Endpoint{
		Path: "/api/destinations/" + seg + "/averages",
		Page: "/destinations/" + seg,
	}
}
