// Package intake reads batches of questionnaire submissions from CSV and
// XLSX exports.
package intake

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/exit-readiness/internal/model"
)

// Profile columns recognized in a header row. Question columns use the
// questionnaire ids (q1..q10).
const (
	ColID              = "id"
	ColIndustry        = "industry"
	ColRevenueRange    = "revenue_range"
	ColYearsInBusiness = "years_in_business"
	ColExitTimeline    = "exit_timeline"
	ColLocation        = "location"
)

// columns maps a recognized column name to its index in a row.
type columns map[string]int

// headerKey normalizes a header cell: "Revenue Range" and "revenue-range"
// both become "revenue_range".
func headerKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "_", "-", "_").Replace(s)
	return s
}

// parseHeader indexes the recognized columns of header. Unknown columns are
// ignored; a header with no question column is rejected.
func parseHeader(header []string) (columns, error) {
	cols := make(columns)
	questions := 0
	for i, h := range header {
		key := headerKey(h)
		switch key {
		case ColID, ColIndustry, ColRevenueRange, ColYearsInBusiness, ColExitTimeline, ColLocation:
		default:
			if _, ok := model.QuestionByID(key); !ok {
				continue
			}
			questions++
		}
		if _, dup := cols[key]; dup {
			return nil, eris.Errorf("intake: duplicate column %q", key)
		}
		cols[key] = i
	}
	if questions == 0 {
		return nil, eris.New("intake: header has no question columns (q1..q10)")
	}
	return cols, nil
}

func (c columns) get(row []string, key string) string {
	i, ok := c[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// submission builds a Submission from row. line is the 1-based data row
// number, used as the id when the row has none. Blank rows return false.
func (c columns) submission(row []string, line int) (model.Submission, bool) {
	blank := true
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			blank = false
			break
		}
	}
	if blank {
		return model.Submission{}, false
	}

	sub := model.Submission{
		ID:              c.get(row, ColID),
		Industry:        c.get(row, ColIndustry),
		RevenueRange:    c.get(row, ColRevenueRange),
		YearsInBusiness: c.get(row, ColYearsInBusiness),
		ExitTimeline:    c.get(row, ColExitTimeline),
		Location:        c.get(row, ColLocation),
		Responses:       make(model.Responses),
	}
	if sub.ID == "" {
		sub.ID = fmt.Sprintf("row-%d", line)
	}
	for _, q := range model.Questionnaire {
		if v := c.get(row, q.ID); v != "" {
			sub.Responses[q.ID] = v
		}
	}
	return sub, true
}
