package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"psephos/internal"
	"psephos/internal/util"
)

// Load reads the pre-built electoral-contest spreadsheet. The first
// sheet's first row is promoted to cleaned column headers; the rest
// become data rows, stored verbatim. No schema is enforced beyond the
// header promotion.
func Load(path string) (internal.ContestDataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return internal.ContestDataset{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return internal.ContestDataset{}, errors.New("dataset has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return internal.ContestDataset{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) < 2 {
		return internal.ContestDataset{}, fmt.Errorf("sheet %s has no data rows", sheet)
	}

	columns := make([]string, 0, len(rows[0]))
	for _, h := range rows[0] {
		columns = append(columns, util.CleanColumnName(h))
	}

	out := internal.ContestDataset{Columns: columns}
	rowNo := 0
	for _, raw := range rows[1:] {
		cells := make([]string, 0, len(raw))
		empty := true
		for _, c := range raw {
			c = util.NormalizeSpaces(c)
			if c != "" {
				empty = false
			}
			cells = append(cells, c)
		}
		if empty {
			continue
		}
		// Ragged xlsx rows come back short; pad to the header width.
		for len(cells) < len(columns) {
			cells = append(cells, "")
		}

		rowNo++
		out.Rows = append(out.Rows, internal.ContestRow{RowNo: rowNo, Sheet: sheet, Cells: cells})
	}

	return out, nil
}
