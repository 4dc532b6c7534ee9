package service

import (
	"math"

	"github.com/proftafla/exam-service/internal/domain"
)

// statsAccumulator reduces student counts. Order of Add calls does not matter.
type statsAccumulator struct {
	numTests    int
	numStudents int
	min         int
	max         int
	seenValid   bool
}

// Add counts the record; NaN counts are tallied in numTests only.
func (a *statsAccumulator) Add(record domain.ExamRecord) {
	a.numTests++
	if record.Students.IsNaN() {
		return
	}
	n := record.Students.Value
	a.numStudents += n
	if !a.seenValid {
		a.min, a.max = n, n
		a.seenValid = true
		return
	}
	if n < a.min {
		a.min = n
	}
	if n > a.max {
		a.max = n
	}
}

func (a *statsAccumulator) AddGroups(groups []domain.ExamGroup) {
	for _, group := range groups {
		for _, record := range group.Tests {
			a.Add(record)
		}
	}
}

func (a *statsAccumulator) Summary() domain.StatsSummary {
	average := math.NaN()
	if a.numTests > 0 {
		average = float64(a.numStudents) / float64(a.numTests)
	}
	return domain.StatsSummary{
		Min:             a.min,
		Max:             a.max,
		NumTests:        a.numTests,
		NumStudents:     a.numStudents,
		AverageStudents: average,
	}
}
