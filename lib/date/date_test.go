package date

import (
	"testing"
)

func TestParseDate(t *testing.T) {
	d := ParseDate("2021-12-07")
	if d.Year() != 2021 || d.Month() != 12 || d.Day() != 7 {
		t.Errorf("bad date %s", d)
	}
	d = ParseDate("2021-12")
	if d.Year() != 2021 || d.Month() != 12 {
		t.Errorf("bad date %s", d)
	}
	d = ParseDate("2021")
	if d.Year() != 2021 {
		t.Errorf("bad date %s", d)
	}
	if !ParseDate("").IsZero() {
		t.Errorf("empty date should be zero")
	}
	if !ParseDate("bogus").IsZero() {
		t.Errorf("bad date should be zero")
	}
}

func TestParseRFC1123(t *testing.T) {
	d := ParseRFC1123("Tue, 07 Dec 2021 19:57:22 -0500")
	if d.IsZero() {
		t.Errorf("RFC1123Z should parse")
	}
	d = ParseRFC1123("Mon, 06 Dec 2021 19:00:00 EST")
	if d.IsZero() {
		t.Errorf("RFC1123 should parse")
	}
	if !ParseRFC1123("").IsZero() {
		t.Errorf("empty should be zero")
	}
}
