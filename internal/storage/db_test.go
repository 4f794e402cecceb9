package storage

import (
	"path/filepath"
	"testing"

	"psephos/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceContests(t *testing.T) {
	db := openTestDB(t)

	ds := internal.ContestDataset{
		Columns: []string{"country_territory", "contest_year"},
		Rows: []internal.ContestRow{
			{RowNo: 1, Sheet: "Sheet1", Cells: []string{"Exampleland", "2019"}},
			{RowNo: 2, Sheet: "Sheet1", Cells: []string{"Monosys", "2021"}},
		},
	}
	if err := db.ReplaceContests(ds); err != nil {
		t.Fatal(err)
	}
	count, err := db.CountContests()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Fatalf("count=%d", count)
	}

	// Replace, not append.
	if err := db.ReplaceContests(internal.ContestDataset{Columns: ds.Columns, Rows: ds.Rows[:1]}); err != nil {
		t.Fatal(err)
	}
	count, _ = db.CountContests()
	if count != 1 {
		t.Fatalf("count after replace=%d", count)
	}

	cols, err := db.GetMetadata("contests.columns")
	if err != nil || cols == nil {
		t.Fatalf("columns metadata missing: %v", err)
	}
}

func TestMetadataRoundTrip(t *testing.T) {
	db := openTestDB(t)

	if v, err := db.GetMetadata("absent"); err != nil || v != nil {
		t.Fatalf("absent key: v=%v err=%v", v, err)
	}
	if err := db.SetMetadata("k", "v1"); err != nil {
		t.Fatal(err)
	}
	if err := db.SetMetadata("k", "v2"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMetadata("k")
	if err != nil || v == nil || *v != "v2" {
		t.Fatalf("v=%v err=%v", v, err)
	}
}

func TestInsertRun(t *testing.T) {
	db := openTestDB(t)
	err := db.InsertRun("abc123", map[string]float64{"totalMs": 12}, map[string]int{"raw": 3})
	if err != nil {
		t.Fatal(err)
	}
}
