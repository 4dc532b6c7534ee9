package domain

import (
	"encoding/json"
	"math"
)

// StatsSummary aggregates student counts over a set of exams.
type StatsSummary struct {
	Min             int     `json:"min"`
	Max             int     `json:"max"`
	NumTests        int     `json:"numTests"`
	NumStudents     int     `json:"numStudents"`
	AverageStudents float64 `json:"averageStudents"`
}

// MarshalJSON writes a NaN average as null.
func (s StatsSummary) MarshalJSON() ([]byte, error) {
	type alias StatsSummary
	var avg *float64
	if !math.IsNaN(s.AverageStudents) && !math.IsInf(s.AverageStudents, 0) {
		v := s.AverageStudents
		avg = &v
	}
	return json.Marshal(struct {
		alias
		AverageStudents *float64 `json:"averageStudents"`
	}{alias: alias(s), AverageStudents: avg})
}
