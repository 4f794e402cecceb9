package pipeline

import (
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"psephos/internal"
)

// ExportNormalizedToXLSX writes the long-form table to a spreadsheet
// with a second sheet holding the frequency aggregation.
func ExportNormalizedToXLSX(rows []internal.NormalizedSystemsRow, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"country_territory", "voting_system"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		r := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, r)
		_ = f.SetCellValue(sheet, cell, row.CountryTerritory)
		cell, _ = excelize.CoordinatesToCellName(2, r)
		_ = f.SetCellValue(sheet, cell, row.VotingSystem)
	}

	countsSheet := "counts"
	if _, err := f.NewSheet(countsSheet); err == nil {
		_ = f.SetCellValue(countsSheet, "A1", "voting_system")
		_ = f.SetCellValue(countsSheet, "B1", "count")
		for i, c := range CountSystems(rows) {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			_ = f.SetCellValue(countsSheet, cell, c.VotingSystem)
			cell, _ = excelize.CoordinatesToCellName(2, i+2)
			_ = f.SetCellValue(countsSheet, cell, c.Count)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}
