package importer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestReadRecordsMapsByHeader(t *testing.T) {
	path := writeCSV(t, "title,year,studio_name\nInception,2010,Warner Bros\nHeat,1995,\n")

	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if got := records[0].Get("title"); got != "Inception" {
		t.Errorf("title = %q, want Inception", got)
	}
	if got := records[1].Get("studio_name"); got != "" {
		t.Errorf("blank cell = %q, want empty", got)
	}
	if got := records[1].Get("no_such_column"); got != "" {
		t.Errorf("missing column = %q, want empty", got)
	}
}

func TestReadRecordsStripsBOM(t *testing.T) {
	path := writeCSV(t, "\xEF\xBB\xBFtitle,year\nHeat,1995\n")

	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if got := records[0].Get("title"); got != "Heat" {
		t.Errorf("title = %q, want Heat (BOM should not leak into header)", got)
	}
}

func TestReadRecordsMissingFile(t *testing.T) {
	_, err := ReadRecords(filepath.Join(t.TempDir(), "absent.csv"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestReadRecordsEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := ReadRecords(path)
	var invalid *ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("err = %v, want ValidationError for missing header", err)
	}
}

func TestReadRecordsShortRow(t *testing.T) {
	path := writeCSV(t, "title,year,format\nHeat,1995\n")

	records, err := ReadRecords(path)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if got := records[0].Get("format"); got != "" {
		t.Errorf("format = %q, want empty for short row", got)
	}
}
