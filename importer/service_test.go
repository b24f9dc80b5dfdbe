package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseYearCoercesByDefault(t *testing.T) {
	s := NewService(nil, Options{})

	cases := map[string]int{
		"2010":       2010,
		"":           0,
		"  1995  ":   1995,
		"not-a-year": 0,
		"2010.5":     0,
		"\t twelve ": 0,
	}
	for cell, want := range cases {
		got, err := s.parseYear(cell)
		if err != nil {
			t.Errorf("parseYear(%q) err = %v", cell, err)
			continue
		}
		if got != want {
			t.Errorf("parseYear(%q) = %d, want %d", cell, got, want)
		}
	}
}

func TestParseYearStrict(t *testing.T) {
	s := NewService(nil, Options{StrictYear: true})

	if _, err := s.parseYear("not-a-year"); err == nil {
		t.Error("strict parseYear accepted garbage")
	}
	if got, err := s.parseYear("2010"); err != nil || got != 2010 {
		t.Errorf("strict parseYear(2010) = %d, %v", got, err)
	}
	if got, err := s.parseYear(""); err != nil || got != 0 {
		t.Errorf("strict parseYear(empty) = %d, %v", got, err)
	}
}

func TestParseAddedAtLayouts(t *testing.T) {
	got, err := parseAddedAt("2023-06-15 10:30:00")
	if err != nil {
		t.Fatalf("parseAddedAt: %v", err)
	}
	want := time.Date(2023, 6, 15, 10, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := parseAddedAt("2023-06-15"); err != nil {
		t.Errorf("date-only layout rejected: %v", err)
	}
	if _, err := parseAddedAt("june 15th"); err == nil {
		t.Error("garbage date accepted")
	}
}

func TestOptionalTrimsAndNils(t *testing.T) {
	if optional("   ") != nil {
		t.Error("whitespace-only cell should be nil")
	}
	if got := optional("  DVD "); got == nil || *got != "DVD" {
		t.Errorf("optional trimming broken: %v", got)
	}
}

func TestReportRowErrorPlaceholdersAndTruncation(t *testing.T) {
	var out bytes.Buffer
	s := NewService(nil, Options{Output: &out})

	longLink := strings.Repeat("x", 200)
	rec := Record{"download_link": longLink}
	result := &Result{}

	s.reportRowError(result, 2, rec, validationErrorf("movie title is required"))

	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(result.Errors))
	}
	msg := result.Errors[0]
	if !strings.Contains(msg, "line 2") {
		t.Errorf("message lacks line number: %s", msg)
	}
	if !strings.Contains(msg, `"UNKNOWN"`) {
		t.Errorf("message lacks UNKNOWN placeholders: %s", msg)
	}

	report := out.String()
	if !strings.Contains(report, strings.Repeat("x", 80)+"...") {
		t.Error("long cell value not truncated at 80 characters")
	}
	if strings.Contains(report, strings.Repeat("x", 81)) {
		t.Error("truncation kept more than 80 characters")
	}
}

func TestTagPalette(t *testing.T) {
	if len(tagPalette) != 7 {
		t.Fatalf("palette has %d colors, want 7", len(tagPalette))
	}
	for _, color := range tagPalette {
		if len(color) != 7 || color[0] != '#' {
			t.Errorf("bad palette color %q", color)
		}
	}
}
