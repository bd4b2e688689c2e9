package playlist

import (
	"errors"
	"strings"
	"testing"
)

func TestNormalizeAvailabilityTagging(t *testing.T) {
	raw := []RawItem{
		{ID: "a", Title: "First", Position: 0, Transcript: "full transcript text"},
		{ID: "b", Title: "Second", Position: 1, Description: "only a description"},
		{ID: "c", Title: "Third", Position: 2},
	}
	items, skipped, err := Normalize(raw, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("expected no skipped records, got %d", skipped)
	}
	want := []Availability{AvailabilityFull, AvailabilityDescriptionOnly, AvailabilityUnavailable}
	for i, item := range items {
		if item.Availability != want[i] {
			t.Fatalf("item %d: expected availability %s, got %s", i, want[i], item.Availability)
		}
	}
}

func TestNormalizeSkipsMalformedRecords(t *testing.T) {
	raw := []RawItem{
		{ID: "", Title: "no id", Position: 0},
		{ID: "ok", Title: "fine", Position: 1, Description: "d"},
		{ID: "neg", Title: "bad position", Position: -1},
	}
	items, skipped, err := Normalize(raw, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("expected 2 skipped records, got %d", skipped)
	}
	if len(items) != 1 || items[0].ID != "ok" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestNormalizeFailsWhenNothingValid(t *testing.T) {
	_, _, err := Normalize([]RawItem{{ID: ""}}, NormalizeOptions{})
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem, got %v", err)
	}
	_, _, err = Normalize(nil, NormalizeOptions{})
	if !errors.Is(err, ErrInvalidItem) {
		t.Fatalf("expected ErrInvalidItem for empty input, got %v", err)
	}
}

func TestNormalizeTruncatesText(t *testing.T) {
	raw := []RawItem{{
		ID:          "a",
		Position:    0,
		Transcript:  strings.Repeat("t", 100),
		Description: strings.Repeat("d", 100),
	}}
	items, _, err := Normalize(raw, NormalizeOptions{MaxTranscriptChars: 10, MaxDescriptionChars: 5})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(items[0].Transcript) != 10 {
		t.Fatalf("expected transcript truncated to 10, got %d", len(items[0].Transcript))
	}
	if len(items[0].Description) != 5 {
		t.Fatalf("expected description truncated to 5, got %d", len(items[0].Description))
	}
}

func TestNormalizeCapsAndOrders(t *testing.T) {
	raw := []RawItem{
		{ID: "c", Position: 2, Description: "d"},
		{ID: "a", Position: 0, Description: "d"},
		{ID: "b", Position: 1, Description: "d"},
	}
	items, _, err := Normalize(raw, NormalizeOptions{MaxItems: 2})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected cap to 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("expected position order a,b; got %s,%s", items[0].ID, items[1].ID)
	}
}

func TestNormalizeDefaultsTitleAndURL(t *testing.T) {
	items, _, err := Normalize([]RawItem{{ID: "vid123", Position: 0, Description: "d"}}, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if items[0].Title != "vid123" {
		t.Fatalf("expected fallback title, got %q", items[0].Title)
	}
	if items[0].URL != "https://www.youtube.com/watch?v=vid123" {
		t.Fatalf("unexpected url %q", items[0].URL)
	}
}

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"P1DT1H", 90000},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := ParseISODuration(tc.in); got != tc.want {
			t.Fatalf("ParseISODuration(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestDurationMinutesRoundsUp(t *testing.T) {
	items, _, err := Normalize([]RawItem{{ID: "a", Position: 0, Duration: "PT4M13S", Description: "d"}}, NormalizeOptions{})
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if items[0].DurationMinutes != 5 {
		t.Fatalf("expected 5 minutes, got %d", items[0].DurationMinutes)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(3723); got != "1h 2m 3s" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatDuration(253); got != "4m 13s" {
		t.Fatalf("unexpected format %q", got)
	}
	if got := FormatDuration(9); got != "9s" {
		t.Fatalf("unexpected format %q", got)
	}
}

func TestParseRef(t *testing.T) {
	id, err := ParseRef("https://www.youtube.com/playlist?list=PLabcdef12345")
	if err != nil {
		t.Fatalf("ParseRef returned error: %v", err)
	}
	if id != "PLabcdef12345" {
		t.Fatalf("unexpected id %q", id)
	}

	id, err = ParseRef("PLabcdef12345")
	if err != nil {
		t.Fatalf("ParseRef returned error for bare id: %v", err)
	}
	if id != "PLabcdef12345" {
		t.Fatalf("unexpected id %q", id)
	}

	if _, err := ParseRef("https://example.com/watch?list=PLabcdef12345"); err == nil {
		t.Fatal("expected rejection of non-youtube host")
	}
	if _, err := ParseRef("https://www.youtube.com/watch?v=abc"); err == nil {
		t.Fatal("expected rejection of url without list parameter")
	}
	if _, err := ParseRef(""); err == nil {
		t.Fatal("expected rejection of empty reference")
	}
}
