package pipeline

import (
	"testing"

	"psephos/internal"
)

func sp(v string) *string { return &v }

func TestNormalizeRowsBlankAnswers(t *testing.T) {
	rows := []internal.RawSystemsRow{
		{RowNo: 1, CountryTerritory: "X", Answers: nil},
	}
	out := NormalizeRows(rows)
	if len(out) != 0 {
		t.Fatalf("blank answers produced %d rows", len(out))
	}
}

func TestNormalizeRowsTwoSegments(t *testing.T) {
	rows := []internal.RawSystemsRow{
		{RowNo: 1, CountryTerritory: "Exampleland", Answers: sp("a. Party-list V. b. Two-Round System")},
	}
	out := NormalizeRows(rows)
	if len(out) != 2 {
		t.Fatalf("len=%d", len(out))
	}
	if out[0].VotingSystem != "Party-list Vote" {
		t.Fatalf("segment 1 = %q", out[0].VotingSystem)
	}
	if out[1].VotingSystem != "Two-Round System" {
		t.Fatalf("segment 2 = %q", out[1].VotingSystem)
	}
	for _, row := range out {
		if row.CountryTerritory != "Exampleland" {
			t.Fatalf("country = %q", row.CountryTerritory)
		}
	}
}

func TestNormalizeRowsThreeSegments(t *testing.T) {
	rows := []internal.RawSystemsRow{
		{RowNo: 1, CountryTerritory: "Y", Answers: sp("a. First-past-the-post b. Proportional R. c. Alternative V.")},
	}
	out := NormalizeRows(rows)
	want := []string{"First-past-the-post", "Proportional Representation", "Alternative Vote"}
	if len(out) != len(want) {
		t.Fatalf("len=%d", len(out))
	}
	for i, w := range want {
		if out[i].VotingSystem != w {
			t.Fatalf("segment %d = %q want %q", i+1, out[i].VotingSystem, w)
		}
	}
}

func TestNormalizeRowsPreservesRowOrder(t *testing.T) {
	rows := []internal.RawSystemsRow{
		{RowNo: 1, CountryTerritory: "A", Answers: sp("a. AV")},
		{RowNo: 2, CountryTerritory: "B", Answers: nil},
		{RowNo: 3, CountryTerritory: "C", Answers: sp("a. Party-list R. b. AV")},
	}
	out := NormalizeRows(rows)
	wantCountries := []string{"A", "C", "C"}
	if len(out) != len(wantCountries) {
		t.Fatalf("len=%d", len(out))
	}
	for i, c := range wantCountries {
		if out[i].CountryTerritory != c {
			t.Fatalf("row %d country = %q want %q", i, out[i].CountryTerritory, c)
		}
	}
}

func TestSplitAnswersMalformed(t *testing.T) {
	if got := SplitAnswers(sp("no prefixes here at-all")); len(got) != 0 {
		t.Fatalf("unprefixed text split into %v", got)
	}
	// Leading boilerplate before the first prefix is discarded.
	if got := SplitAnswers(sp("see note a. AV")); len(got) != 1 || got[0] != "AV" {
		t.Fatalf("got %v", got)
	}
}

func TestExpandSystemNameIdempotent(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Party-list V", "Party-list Vote"},
		{"Proportional R", "Proportional Representation"},
		{"Two-Round System", "Two-Round System"},
	}
	for _, tc := range cases {
		once := ExpandSystemName(tc.input)
		if once != tc.want {
			t.Fatalf("ExpandSystemName(%q) = %q want %q", tc.input, once, tc.want)
		}
		if twice := ExpandSystemName(once); twice != once {
			t.Fatalf("rewrite not idempotent: %q -> %q", once, twice)
		}
	}
}

func TestNormalizeRowsCountInvariants(t *testing.T) {
	rows := []internal.RawSystemsRow{
		{RowNo: 1, CountryTerritory: "A", Answers: sp("a. AV")},
		{RowNo: 2, CountryTerritory: "B", Answers: sp("a. Party-list R. b. AV")},
		{RowNo: 3, CountryTerritory: "C", Answers: nil},
		{RowNo: 4, CountryTerritory: "D", Answers: sp("a. Two-Round System b. AV c. Party-list R.")},
	}
	out := NormalizeRows(rows)

	total := 0
	for _, c := range CountSystems(out) {
		total += c.Count
	}
	if total != len(out) {
		t.Fatalf("count sum %d != normalized rows %d", total, len(out))
	}
	if dc := DistinctCountries(out); dc > len(rows) {
		t.Fatalf("distinct countries %d > raw rows %d", dc, len(rows))
	}
}
