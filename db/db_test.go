package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/setstats/data"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func testIndex() *data.SongIndex {
	barton := data.ShowInfo{
		ID:   "show-1",
		Date: "08-05-1977",
		Venue: data.Venue{
			ID: "v1", Name: "Barton Hall", City: "Ithaca", Country: "United States",
		},
		Year: 1977,
		Era:  "Return + '77 Era",
	}
	buffalo := data.ShowInfo{
		ID:   "show-2",
		Date: "09-05-1977",
		Venue: data.Venue{
			ID: "v2", Name: "War Memorial Auditorium", City: "Buffalo", Country: "United States",
		},
		Year: 1977,
		Era:  "Return + '77 Era",
	}

	return &data.SongIndex{
		BuildID:     "build-1",
		LastUpdated: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		TotalShows:  2,
		Songs: []data.SongIndexEntry{
			{
				Title:             "Scarlet Begonias",
				Slug:              "scarlet-begonias",
				AltTitles:         []string{"Scarlet Begonias >"},
				Shows:             []data.ShowInfo{buffalo, barton},
				TotalPerformances: 2,
			},
			{
				Title:             "Jack Straw",
				Slug:              "jack-straw",
				Shows:             []data.ShowInfo{barton},
				TotalPerformances: 1,
			},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	db := openTestDB(t)

	if err := db.Save(testIndex()); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded == nil {
		t.Fatal("expected a stored index")
	}

	if loaded.BuildID != "build-1" || loaded.TotalShows != 2 {
		t.Errorf("meta = %q / %d", loaded.BuildID, loaded.TotalShows)
	}
	if !loaded.LastUpdated.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("lastUpdated = %v", loaded.LastUpdated)
	}
	if len(loaded.Songs) != 2 {
		t.Fatalf("got %d songs", len(loaded.Songs))
	}

	// Song order must survive the round trip.
	scarlet := loaded.Songs[0]
	if scarlet.Slug != "scarlet-begonias" || loaded.Songs[1].Slug != "jack-straw" {
		t.Fatalf("song order = %q, %q", loaded.Songs[0].Slug, loaded.Songs[1].Slug)
	}

	if len(scarlet.AltTitles) != 1 || scarlet.AltTitles[0] != "Scarlet Begonias >" {
		t.Errorf("altTitles = %v", scarlet.AltTitles)
	}
	if len(scarlet.Shows) != 2 || scarlet.Shows[0].ID != "show-2" {
		t.Errorf("shows = %+v", scarlet.Shows)
	}
	if scarlet.Shows[1].Venue.Name != "Barton Hall" {
		t.Errorf("venue = %+v", scarlet.Shows[1].Venue)
	}

	// First/last come back recomputed from the show list, not stored.
	if scarlet.FirstPerformance == nil || scarlet.FirstPerformance.Date != "08-05-1977" {
		t.Errorf("firstPerformance = %+v", scarlet.FirstPerformance)
	}
	if scarlet.LastPerformance == nil || scarlet.LastPerformance.Date != "09-05-1977" {
		t.Errorf("lastPerformance = %+v", scarlet.LastPerformance)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	db := openTestDB(t)

	if err := db.Save(testIndex()); err != nil {
		t.Fatal(err)
	}

	replacement := &data.SongIndex{
		BuildID:     "build-2",
		LastUpdated: time.Now().UTC(),
		TotalShows:  1,
		Songs: []data.SongIndexEntry{
			{Title: "Ripple", Slug: "ripple", TotalPerformances: 1, Shows: []data.ShowInfo{{ID: "show-3", Date: "01-01-1971"}}},
		},
	}
	if err := db.Save(replacement); err != nil {
		t.Fatal(err)
	}

	loaded, err := db.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BuildID != "build-2" || len(loaded.Songs) != 1 || loaded.Songs[0].Slug != "ripple" {
		t.Errorf("loaded = %+v", loaded)
	}
}

func TestLoadEmpty(t *testing.T) {
	db := openTestDB(t)

	loaded, err := db.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded != nil {
		t.Errorf("empty db should load nil, got %+v", loaded)
	}
}

func TestSaveNil(t *testing.T) {
	db := openTestDB(t)
	if err := db.Save(nil); err == nil {
		t.Error("expected an error saving a nil index")
	}
}
