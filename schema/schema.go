// Package schema has models and constants for all parts of satscout.
package schema

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// School is one entry of the high school directory.
// DBN is the district-borough-number and is unique across the directory.
type School struct {
	DBN           string `json:"dbn"`
	Name          string `json:"school_name"`
	Latitude      string `json:"latitude,omitempty"`
	Longitude     string `json:"longitude,omitempty"`
	Location      string `json:"location"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	Website       string `json:"website,omitempty"`
	TotalStudents string `json:"total_students,omitempty"`
	Borough       string `json:"borough,omitempty"`
	City          string `json:"city,omitempty"`
}

// Coordinates returns the parsed location of the school.
// The second return value is false when either field is missing, non-numeric or out of range.
func (s School) Coordinates() (Coordinates, bool) {
	return ParseCoordinates(s.Latitude, s.Longitude)
}

// Coordinates is a validated latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ParseCoordinates parses a latitude/longitude pair encoded as strings.
func ParseCoordinates(lat, lon string) (Coordinates, bool) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil || math.IsNaN(la) || math.IsInf(la, 0) || la < -90 || la > 90 {
		return Coordinates{}, false
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil || math.IsNaN(lo) || math.IsInf(lo, 0) || lo < -180 || lo > 180 {
		return Coordinates{}, false
	}
	return Coordinates{Lat: la, Lon: lo}, true
}

// LenientInt is an integer that the remote API transmits as a string.
// Anything that does not parse as an integer decodes to 0 without error,
// which covers the "s" placeholder used for suppressed results.
type LenientInt int

// UnmarshalJSON implements json.Unmarshaler.
func (n *LenientInt) UnmarshalJSON(data []byte) error {
	*n = 0
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		raw = s
	}
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		*n = LenientInt(v)
	}
	return nil
}

// RawScore mirrors one element of the score endpoint's JSON array.
type RawScore struct {
	DBN        string     `json:"dbn"`
	SchoolName string     `json:"school_name"`
	TestTakers LenientInt `json:"num_of_sat_test_takers"`
	Reading    LenientInt `json:"sat_critical_reading_avg_score"`
	Math       LenientInt `json:"sat_math_avg_score"`
	Writing    LenientInt `json:"sat_writing_avg_score"`
}

// Score is the decoded and classified SAT result for one school.
type Score struct {
	DBN         string `json:"dbn"`
	TestTakers  int    `json:"num_of_sat_test_takers"`
	Reading     int    `json:"sat_critical_reading_avg_score"`
	Math        int    `json:"sat_math_avg_score"`
	Writing     int    `json:"sat_writing_avg_score"`
	ReadingTier Tier   `json:"reading_tier"`
	MathTier    Tier   `json:"math_tier"`
	WritingTier Tier   `json:"writing_tier"`
}

// HasData reports whether the record carries meaningful scores.
// Zero test takers is the sentinel for "no data available".
func (s *Score) HasData() bool {
	return s != nil && s.TestTakers > 0
}

// Value returns the score for a subject.
func (s *Score) Value(subject Subject) int {
	switch subject {
	case ReadingSubject:
		return s.Reading
	case MathSubject:
		return s.Math
	default:
		return s.Writing
	}
}

// TierOf returns the tier for a subject.
func (s *Score) TierOf(subject Subject) Tier {
	switch subject {
	case ReadingSubject:
		return s.ReadingTier
	case MathSubject:
		return s.MathTier
	default:
		return s.WritingTier
	}
}

// FetchOutcome describes how a fetch ended so that "no data" and "failed"
// stay distinguishable below the presentation layer.
type FetchOutcome struct {
	Status FetchStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

// OK reports whether data was returned.
func (o FetchOutcome) OK() bool {
	return o.Status == FetchOK
}

// ScoreResult is a score lookup for one school, as shown to the user.
type ScoreResult struct {
	School  *School      `json:"school,omitempty"`
	Score   *Score       `json:"score,omitempty"`
	Outcome FetchOutcome `json:"outcome"`
}

// DirectoryResult is a directory fetch, as shown to the user.
type DirectoryResult struct {
	Schools []School     `json:"schools"`
	Outcome FetchOutcome `json:"outcome"`
}
