package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proftafla/exam-service/internal/domain"
)

func records(counts ...domain.StudentCount) []domain.ExamGroup {
	tests := make([]domain.ExamRecord, 0, len(counts))
	for _, c := range counts {
		tests = append(tests, domain.ExamRecord{Students: c})
	}
	return []domain.ExamGroup{{Heading: "h", Tests: tests}}
}

func TestAccumulatorOrderIndependent(t *testing.T) {
	orders := [][]int{{10, 20, 30}, {30, 20, 10}, {20, 30, 10}}
	for _, order := range orders {
		var acc statsAccumulator
		for _, n := range order {
			acc.Add(domain.ExamRecord{Students: domain.Students(n)})
		}
		require.Equal(t, domain.StatsSummary{Min: 10, Max: 30, NumTests: 3, NumStudents: 60, AverageStudents: 20}, acc.Summary())
	}
}

func TestAccumulatorSingleValueSetsMinAndMax(t *testing.T) {
	var acc statsAccumulator
	acc.AddGroups(records(domain.Students(7)))

	summary := acc.Summary()
	require.Equal(t, 7, summary.Min)
	require.Equal(t, 7, summary.Max)
}

func TestAccumulatorSkipsNaNCounts(t *testing.T) {
	var acc statsAccumulator
	acc.AddGroups(records(domain.NaNStudents(), domain.Students(5), domain.NaNStudents(), domain.Students(15)))

	summary := acc.Summary()
	require.Equal(t, 4, summary.NumTests)
	require.Equal(t, 20, summary.NumStudents)
	require.Equal(t, 5, summary.Min)
	require.Equal(t, 15, summary.Max)
	require.Equal(t, 5.0, summary.AverageStudents)
}

func TestAccumulatorEmpty(t *testing.T) {
	var acc statsAccumulator
	summary := acc.Summary()

	require.True(t, math.IsNaN(summary.AverageStudents))
	require.Zero(t, summary.Min)
	require.Zero(t, summary.Max)
}
