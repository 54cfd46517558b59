package index

import (
	"testing"
	"time"

	"github.com/amonks/setstats/data"
)

func testIndex(songs ...data.SongIndexEntry) *data.SongIndex {
	return &data.SongIndex{Songs: songs, LastUpdated: time.Now()}
}

func entry(title string, performances int, altTitles ...string) data.SongIndexEntry {
	return data.SongIndexEntry{
		Title:             title,
		Slug:              data.Slug(title),
		AltTitles:         append([]string{title}, altTitles...),
		TotalPerformances: performances,
	}
}

func TestSearchExactMatchFirst(t *testing.T) {
	idx := testIndex(
		entry("Jack Straw From Wichita", 500),
		entry("Jack Straw", 3),
	)

	results := searchIndex(idx, "jack straw", 20)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	// The exact title match outranks the partial match despite far
	// fewer performances.
	if results[0].Title != "Jack Straw" {
		t.Errorf("first result %q, want exact match first", results[0].Title)
	}
}

func TestSearchOrdersByPerformances(t *testing.T) {
	idx := testIndex(
		entry("Me and My Uncle", 10),
		entry("Me and Bobby McGee", 40),
	)

	results := searchIndex(idx, "me and", 20)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Title != "Me and Bobby McGee" {
		t.Errorf("first result %q, want most-played first", results[0].Title)
	}
}

func TestSearchStableTies(t *testing.T) {
	idx := testIndex(
		entry("China Cat Sunflower", 7),
		entry("China Doll", 7),
	)

	results := searchIndex(idx, "china", 20)
	if results[0].Title != "China Cat Sunflower" || results[1].Title != "China Doll" {
		t.Errorf("ties must keep index order, got %q then %q", results[0].Title, results[1].Title)
	}
}

func TestSearchMatchesAltTitles(t *testing.T) {
	idx := testIndex(
		entry("Playing in the Band", 12, "Playin' in the Band"),
	)

	if results := searchIndex(idx, "playin'", 20); len(results) != 1 {
		t.Errorf("alt title search got %d results, want 1", len(results))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	idx := testIndex(entry("Jack Straw", 3))

	if results := searchIndex(idx, "", 20); len(results) != 0 {
		t.Errorf("empty query returned %d results", len(results))
	}
	if results := searchIndex(idx, "   ", 20); len(results) != 0 {
		t.Errorf("whitespace query returned %d results", len(results))
	}
}

func TestSearchLimit(t *testing.T) {
	idx := testIndex(
		entry("Deal", 1),
		entry("Dear Mr. Fantasy", 2),
		entry("Death Don't Have No Mercy", 3),
	)

	if results := searchIndex(idx, "de", 2); len(results) != 2 {
		t.Errorf("got %d results, want limit of 2", len(results))
	}
}

func TestSearchNilIndex(t *testing.T) {
	if results := searchIndex(nil, "jack", 20); results != nil {
		t.Errorf("nil index returned %v", results)
	}
}
