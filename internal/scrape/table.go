package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"psephos/internal"
	"psephos/internal/util"
)

// ExtractSystemsTable locates the tableIndex-th (1-based) <table> in
// document order, promotes its first row to column headers, and
// materializes the remaining rows. Header cells are cleaned to
// snake_case and the country/answers columns are located by name, with
// positional fallback when the probes find nothing.
func ExtractSystemsTable(doc *goquery.Document, tableIndex int) ([]internal.RawSystemsRow, error) {
	tables := doc.Find("table")
	if tableIndex < 1 || tableIndex > tables.Length() {
		return nil, fmt.Errorf("table %d not found: document has %d tables", tableIndex, tables.Length())
	}
	table := tables.Eq(tableIndex - 1)

	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil, fmt.Errorf("table %d has no data rows", tableIndex)
	}

	headers := []string{}
	rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
		headers = append(headers, util.CleanColumnName(cell.Text()))
	})

	countryIdx := findHeaderIndex(headers, []string{"country", "territory", "state", "nation"})
	answersIdx := findHeaderIndex(headers, []string{"answer", "system", "suffrage", "response"})
	if countryIdx < 0 {
		countryIdx = 0
	}
	if answersIdx < 0 {
		answersIdx = 1
	}

	out := []internal.RawSystemsRow{}
	rowNo := 0
	rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, util.NormalizeSpaces(cell.Text()))
		})
		if len(cells) == 0 {
			return
		}

		country := pickCell(cells, countryIdx)
		if country == "" {
			return
		}

		rowNo++
		out = append(out, internal.RawSystemsRow{
			RowNo:            rowNo,
			CountryTerritory: country,
			Answers:          util.BlankToNil(pickCell(cells, answersIdx)),
		})
	})

	return out, nil
}

func findHeaderIndex(headers []string, probes []string) int {
	for i, h := range headers {
		for _, probe := range probes {
			if strings.Contains(h, probe) {
				return i
			}
		}
	}
	return -1
}

func pickCell(cells []string, idx int) string {
	if idx >= 0 && idx < len(cells) {
		return strings.TrimSpace(cells[idx])
	}
	return ""
}
