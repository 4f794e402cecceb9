package internal

// RawSystemsRow is one scraped row of the electoral-systems table,
// before any reshaping. Answers is nil when the source cell was blank.
type RawSystemsRow struct {
	RowNo            int
	CountryTerritory string
	Answers          *string
}

// NormalizedSystemsRow is one (country, voting-system) pair of the
// long-form table produced by the normalizer.
type NormalizedSystemsRow struct {
	CountryTerritory string
	VotingSystem     string
}

// SystemCount is one aggregated (voting-system, count) pair.
type SystemCount struct {
	VotingSystem string
	Count        int
}

// ContestRow is one row of the pre-built electoral-contest dataset.
// Columns are whatever the spreadsheet carries; this tool stores them
// verbatim and enforces no schema of its own.
type ContestRow struct {
	RowNo int
	Sheet string
	Cells []string
}

// ContestDataset is the loaded contest spreadsheet: cleaned column
// headers plus data rows.
type ContestDataset struct {
	Columns []string
	Rows    []ContestRow
}

// ScrapeResult carries the extracted raw table plus provenance.
type ScrapeResult struct {
	SourceURL  string
	TableIndex int
	Rows       []RawSystemsRow
}
