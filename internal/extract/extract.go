package extract

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/proftafla/exam-service/internal/domain"
	apperrors "github.com/proftafla/exam-service/pkg/util/errorutil"
)

// Column order of an exam schedule row.
const (
	colCourse = iota
	colName
	colType
	colStudents
	colDate
)

type envelope struct {
	HTML *string `json:"html"`
}

// Extractor turns upstream JSON envelopes into exam groups.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor returns an Extractor. A nil logger discards diagnostics.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger}
}

// Parse decodes the envelope and pairs each h3 heading with the table at the same position.
func (e *Extractor) Parse(raw string) ([]domain.ExamGroup, error) {
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, apperrors.NewParseError("invalid upstream envelope", err)
	}
	if env.HTML == nil {
		return nil, apperrors.NewParseError("upstream envelope has no html field", nil)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(*env.HTML))
	if err != nil {
		return nil, apperrors.NewParseError("invalid schedule markup", err)
	}

	var headings []string
	doc.Find("h3").Each(func(_ int, sel *goquery.Selection) {
		headings = append(headings, strings.TrimSpace(sel.Text()))
	})

	var tables [][]domain.ExamRecord
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		tables = append(tables, parseRows(table))
	})

	if len(headings) != len(tables) {
		e.logger.Warn("heading and table counts differ",
			zap.Int("headings", len(headings)),
			zap.Int("tables", len(tables)))
	}

	return pairGroups(headings, tables), nil
}

func parseRows(table *goquery.Selection) []domain.ExamRecord {
	records := []domain.ExamRecord{}
	table.ChildrenFiltered("tbody").ChildrenFiltered("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		cell := func(i int) string {
			return strings.TrimSpace(cells.Eq(i).Text())
		}
		records = append(records, domain.ExamRecord{
			Course:   cell(colCourse),
			Name:     cell(colName),
			Type:     cell(colType),
			Students: domain.ParseStudentCount(cell(colStudents)),
			Date:     cell(colDate),
		})
	})
	return records
}

// pairGroups yields one group per heading; tables beyond the last heading are dropped
// and headings beyond the last table get no tests.
func pairGroups(headings []string, tables [][]domain.ExamRecord) []domain.ExamGroup {
	groups := make([]domain.ExamGroup, len(headings))
	for i, heading := range headings {
		groups[i] = domain.ExamGroup{Heading: heading, Tests: []domain.ExamRecord{}}
		if i < len(tables) {
			groups[i].Tests = tables[i]
		}
	}
	return groups
}
