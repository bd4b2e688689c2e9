package playlist

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"coursegen/internal/textutil"
)

// Availability reports how much usable content an item carries.
type Availability string

const (
	// AvailabilityFull means the item has a non-empty transcript.
	AvailabilityFull Availability = "full"
	// AvailabilityDescriptionOnly means transcript retrieval failed or came
	// back empty but a description exists.
	AvailabilityDescriptionOnly Availability = "description-only"
	// AvailabilityUnavailable means neither transcript nor description is
	// present. The item is kept so downstream stages can decide what to do
	// with it.
	AvailabilityUnavailable Availability = "unavailable"
)

// ErrInvalidItem marks a raw record that cannot be normalized.
var ErrInvalidItem = errors.New("invalid source item")

// ErrSourceUnavailable marks a playlist that cannot be retrieved at all.
var ErrSourceUnavailable = errors.New("source unavailable")

// RawItem is one per-video record as returned by a collection provider,
// before normalization.
type RawItem struct {
	ID          string
	Title       string
	Description string
	Duration    string // ISO 8601, e.g. "PT4M13S"
	Position    int
	Transcript  string
	URL         string
}

// Item is the normalized, immutable representation consumed by the rest of
// the pipeline.
type Item struct {
	ID              string       `json:"id"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	DurationMinutes int          `json:"duration_minutes"`
	Position        int          `json:"position"`
	Transcript      string       `json:"transcript,omitempty"`
	Availability    Availability `json:"availability"`
	URL             string       `json:"url"`
}

// Info holds playlist-level metadata.
type Info struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	ItemCount    int    `json:"item_count"`
}

// NormalizeOptions bounds the output of Normalize.
type NormalizeOptions struct {
	MaxItems            int
	MaxTranscriptChars  int
	MaxDescriptionChars int
}

// Normalize validates raw records and produces the ordered Item sequence.
// Records missing an identifier or carrying a negative position are skipped
// and counted; if nothing valid remains the returned error wraps
// ErrInvalidItem. Items are ordered by source position, capped at
// opts.MaxItems, and their transcript and description text is truncated with
// a plain prefix cut.
func Normalize(raw []RawItem, opts NormalizeOptions) ([]Item, int, error) {
	if len(raw) == 0 {
		return nil, 0, fmt.Errorf("%w: empty record list", ErrInvalidItem)
	}

	skipped := 0
	items := make([]Item, 0, len(raw))
	for _, record := range raw {
		item, err := normalizeOne(record, opts)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, skipped, fmt.Errorf("%w: no valid records among %d", ErrInvalidItem, len(raw))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position < items[j].Position
	})
	if opts.MaxItems > 0 && len(items) > opts.MaxItems {
		items = items[:opts.MaxItems]
	}
	return items, skipped, nil
}

func normalizeOne(record RawItem, opts NormalizeOptions) (Item, error) {
	id := strings.TrimSpace(record.ID)
	if id == "" {
		return Item{}, fmt.Errorf("%w: missing identifier", ErrInvalidItem)
	}
	if record.Position < 0 {
		return Item{}, fmt.Errorf("%w: negative position for %s", ErrInvalidItem, id)
	}

	transcript := strings.TrimSpace(record.Transcript)
	description := strings.TrimSpace(record.Description)
	if opts.MaxTranscriptChars > 0 {
		transcript = textutil.Truncate(transcript, opts.MaxTranscriptChars)
	}
	if opts.MaxDescriptionChars > 0 {
		description = textutil.Truncate(description, opts.MaxDescriptionChars)
	}

	availability := AvailabilityUnavailable
	switch {
	case transcript != "":
		availability = AvailabilityFull
	case description != "":
		availability = AvailabilityDescriptionOnly
	}

	title := strings.TrimSpace(record.Title)
	if title == "" {
		title = id
	}
	url := strings.TrimSpace(record.URL)
	if url == "" {
		url = "https://www.youtube.com/watch?v=" + id
	}

	return Item{
		ID:              id,
		Title:           title,
		Description:     description,
		DurationMinutes: durationMinutes(record.Duration),
		Position:        record.Position,
		Transcript:      transcript,
		Availability:    availability,
		URL:             url,
	}, nil
}

func durationMinutes(iso string) int {
	seconds := ParseISODuration(iso)
	if seconds <= 0 {
		return 0
	}
	return (seconds + 59) / 60
}
