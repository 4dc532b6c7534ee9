package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ExamGroup is one heading from the schedule page and the rows of its table.
type ExamGroup struct {
	Heading string       `json:"heading"`
	Tests   []ExamRecord `json:"tests"`
}

// ExamRecord is one row of an exam schedule table.
type ExamRecord struct {
	Course   string       `json:"course"`
	Name     string       `json:"name"`
	Type     string       `json:"type"`
	Students StudentCount `json:"students"`
	Date     string       `json:"date"`
}

// StudentCount is a non-negative head count, or NaN when the source cell was empty or malformed.
type StudentCount struct {
	Value int
	Valid bool
}

// Students builds a valid count.
func Students(n int) StudentCount {
	return StudentCount{Value: n, Valid: true}
}

// NaNStudents is the sentinel for an unparseable cell.
func NaNStudents() StudentCount {
	return StudentCount{}
}

// ParseStudentCount converts cell text to a count. Anything other than a
// non-negative decimal integer (after trimming) yields NaN.
func ParseStudentCount(text string) StudentCount {
	text = strings.TrimSpace(text)
	if text == "" {
		return NaNStudents()
	}
	n, err := strconv.Atoi(text)
	if err != nil || n < 0 {
		return NaNStudents()
	}
	return Students(n)
}

func (s StudentCount) IsNaN() bool {
	return !s.Valid
}

// Float64 returns the count, or math.NaN() for the sentinel.
func (s StudentCount) Float64() float64 {
	if !s.Valid {
		return math.NaN()
	}
	return float64(s.Value)
}

func (s StudentCount) String() string {
	if !s.Valid {
		return "NaN"
	}
	return strconv.Itoa(s.Value)
}

// MarshalJSON encodes NaN as null.
func (s StudentCount) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.Value)), nil
}

func (s *StudentCount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = NaNStudents()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = Students(n)
	return nil
}
