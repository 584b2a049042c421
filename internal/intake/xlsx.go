package intake

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/exit-readiness/internal/model"
)

// ReadXLSX reads submissions from the first sheet of an XLSX workbook.
func ReadXLSX(path string) ([]model.Submission, error) {
	return ReadXLSXSheet(path, "")
}

// ReadXLSXSheet reads submissions from the named sheet, or the first sheet
// when name is empty. The first row must be a header.
func ReadXLSXSheet(path, name string) ([]model.Submission, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "intake: open xlsx")
	}

	sheet, err := getSheet(f, name)
	if err != nil {
		return nil, err
	}
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("intake: sheet %q is empty", sheet.Name)
	}

	cols, err := parseHeader(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	var subs []model.Submission
	for i, row := range sheet.Rows[1:] {
		if sub, ok := cols.submission(rowToStrings(row), i+1); ok {
			subs = append(subs, sub)
		}
	}

	zap.L().Debug("intake: read xlsx",
		zap.String("sheet", sheet.Name),
		zap.Int("submissions", len(subs)),
	)
	return subs, nil
}

func getSheet(f *xlsx.File, name string) (*xlsx.Sheet, error) {
	if name != "" {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, eris.Errorf("intake: sheet %q not found", name)
		}
		return sheet, nil
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("intake: workbook has no sheets")
	}
	return f.Sheets[0], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}
