package main

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/proftafla/exam-service/internal/domain"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

func renderDepartments(w io.Writer, depts []domain.Department) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Slug", "Name"})
	for _, dept := range depts {
		t.AppendRow(table.Row{dept.ID, dept.Slug, dept.Name})
	}
	t.Render()
}

func renderGroups(w io.Writer, groups []domain.ExamGroup) {
	for _, group := range groups {
		t := newTable(w)
		t.SetTitle(group.Heading)
		t.AppendHeader(table.Row{"Course", "Name", "Type", "Students", "Date"})
		for _, rec := range group.Tests {
			t.AppendRow(table.Row{rec.Course, rec.Name, rec.Type, rec.Students.String(), rec.Date})
		}
		t.Render()
	}
}

func renderStats(w io.Writer, title string, v any) error {
	summary, ok := v.(domain.StatsSummary)
	if !ok {
		return fmt.Errorf("unexpected stats type %T", v)
	}

	average := "NaN"
	if !math.IsNaN(summary.AverageStudents) {
		average = fmt.Sprintf("%.2f", summary.AverageStudents)
	}

	t := newTable(w)
	t.SetTitle(title)
	t.AppendRows([]table.Row{
		{"Exams", summary.NumTests},
		{"Students", summary.NumStudents},
		{"Min students", summary.Min},
		{"Max students", summary.Max},
		{"Average students", average},
	})
	t.Render()
	return nil
}
