package models

import (
	"encoding/json"
	"strings"
)

// Recommendation is the canonical form of the "would recommend" answer.
// The API sends it as a bool, "yes"/"no", or a Definitely/Probably scale.
type Recommendation string

const (
	RecommendUnknown Recommendation = ""
	RecommendYes     Recommendation = "yes"
	RecommendNo      Recommendation = "no"
	RecommendMaybe   Recommendation = "maybe"
)

// ParseRecommendation maps any of the observed string encodings to a
// Recommendation. Unrecognised values are RecommendUnknown.
func ParseRecommendation(s string) Recommendation {
	switch strings.ToLower(strings.Join(strings.Fields(s), " ")) {
	case "yes", "true", "definitely", "probably", "definitely yes", "probably yes":
		return RecommendYes
	case "no", "false", "definitely not", "probably not":
		return RecommendNo
	case "maybe", "not sure", "unsure", "neutral":
		return RecommendMaybe
	default:
		return RecommendUnknown
	}
}

// UnmarshalJSON accepts booleans, strings and null.
func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*r = RecommendYes
		} else {
			*r = RecommendNo
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ParseRecommendation(s)
		return nil
	}

	// null or an unexpected shape: treat as unanswered.
	*r = RecommendUnknown
	return nil
}

// Recommends reports a positive answer.
func (r Recommendation) Recommends() bool {
	return r == RecommendYes
}
