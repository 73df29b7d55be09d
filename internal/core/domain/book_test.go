package domain

import (
	"errors"
	"strings"
	"testing"
)

const sampleCatalog = `## Title: 1984
Romanul lui George Orwell descrie o societate distopică aflată sub controlul total al statului.

## Title: The Hobbit
Bilbo Baggins, un hobbit confortabil și fără aventuri, pornește într-o misiune neașteptată.

## Title: Dune
Paul Atreides devine prins într-o luptă pentru controlul planetei deșertice Arrakis.
`

func TestParseCatalog(t *testing.T) {
	records, err := ParseCatalog(sampleCatalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}

	if records[0].Title != "1984" {
		t.Errorf("expected first title 1984, got %q", records[0].Title)
	}
	if records[1].Title != "The Hobbit" {
		t.Errorf("expected second title The Hobbit, got %q", records[1].Title)
	}
	if records[2].Title != "Dune" {
		t.Errorf("expected third title Dune, got %q", records[2].Title)
	}
	if !strings.HasPrefix(records[0].Summary, "Romanul lui George Orwell") {
		t.Errorf("unexpected summary: %q", records[0].Summary)
	}
}

func TestParseCatalog_PreservesOrder(t *testing.T) {
	records, err := ParseCatalog(sampleCatalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"1984", "The Hobbit", "Dune"}
	for i, title := range want {
		if records[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, records[i].Title)
		}
	}
}

func TestParseCatalog_NoMarkers(t *testing.T) {
	records, err := ParseCatalog("just some prose without any markers\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty slice, got %d records", len(records))
	}
}

func TestParseCatalog_Empty(t *testing.T) {
	records, err := ParseCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected empty slice, got %d records", len(records))
	}
}

func TestParseCatalog_MissingBody(t *testing.T) {
	_, err := ParseCatalog("## Title: Orphan Title\n")
	if !errors.Is(err, ErrCatalogMalformed) {
		t.Errorf("expected ErrCatalogMalformed, got %v", err)
	}
}

func TestParseCatalog_IgnoresPreamble(t *testing.T) {
	records, err := ParseCatalog("A catalog of books.\n\n" + sampleCatalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestBookRecord_FullText(t *testing.T) {
	record := BookRecord{Title: "1984", Summary: "O societate distopică."}

	want := "Title: 1984\nO societate distopică."
	if record.FullText() != want {
		t.Errorf("expected %q, got %q", want, record.FullText())
	}
}

func TestBookRecord_FullText_RoundTrip(t *testing.T) {
	records, err := ParseCatalog(sampleCatalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, r := range records {
		want := "Title: " + r.Title + "\n" + r.Summary
		if r.FullText() != want {
			t.Errorf("full text mismatch for %q", r.Title)
		}
	}
}

func TestIndexEntryID(t *testing.T) {
	if got := IndexEntryID(0); got != "book_0" {
		t.Errorf("expected book_0, got %s", got)
	}
	if got := IndexEntryID(11); got != "book_11" {
		t.Errorf("expected book_11, got %s", got)
	}
}
