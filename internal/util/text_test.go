package util

import "testing"

func TestCleanColumnName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Country / Territory", "country_territory"},
		{"  Answers ", "answers"},
		{"Vote %", "vote"},
		{"YEAR (start)", "year_start"},
	}
	for _, tc := range cases {
		if got := CleanColumnName(tc.input); got != tc.want {
			t.Fatalf("CleanColumnName(%q) = %q want %q", tc.input, got, tc.want)
		}
	}
}

func TestBlankToNil(t *testing.T) {
	if got := BlankToNil("   "); got != nil {
		t.Fatalf("blank kept: %q", *got)
	}
	if got := BlankToNil(" a.  AV "); got == nil || *got != "a. AV" {
		t.Fatalf("got %v", got)
	}
}
