package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"psephos/internal"
	"psephos/internal/chart"
	"psephos/internal/storage"
)

func TestSmokeScrapedRowsToArtifacts(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "psephos.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	raw := []internal.RawSystemsRow{
		{RowNo: 1, CountryTerritory: "Exampleland", Answers: sp("a. Party-list V. b. Two-Round System")},
		{RowNo: 2, CountryTerritory: "Blankia", Answers: nil},
		{RowNo: 3, CountryTerritory: "Monosys", Answers: sp("a. Party-list V")},
	}
	if err := db.ReplaceRawSystems(raw); err != nil {
		t.Fatal(err)
	}

	stored, err := db.ListRawSystems()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 3 || stored[1].Answers != nil {
		t.Fatalf("raw round trip broken: %+v", stored)
	}

	normalized := NormalizeRows(stored)
	if len(normalized) != 3 {
		t.Fatalf("normalized=%d", len(normalized))
	}
	if err := db.ReplaceNormalizedSystems(normalized); err != nil {
		t.Fatal(err)
	}

	back, err := db.ListNormalizedSystems()
	if err != nil {
		t.Fatal(err)
	}
	if len(back) != len(normalized) || back[0].VotingSystem != "Party-list Vote" {
		t.Fatalf("normalized round trip broken: %+v", back)
	}

	counts := CountSystems(back)
	if counts[0].VotingSystem != "Party-list Vote" || counts[0].Count != 2 {
		t.Fatalf("top count: %+v", counts[0])
	}

	xlsxOut := filepath.Join(tmp, "systems.xlsx")
	if err := ExportNormalizedToXLSX(back, xlsxOut); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(xlsxOut); err != nil {
		t.Fatal(err)
	}

	pngOut := filepath.Join(tmp, "systems.png")
	if err := chart.RenderSystemCounts(counts, DistinctCountries(back), "Electoral systems", "Source: test", pngOut); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(pngOut); err != nil {
		t.Fatal(err)
	}
}
