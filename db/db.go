// Package db persists song indexes in a sqlite3 database file. The
// index is stored whole and replaced whole: Save overwrites whatever
// came before, and Load reconstitutes the most recent Save.
package db

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amonks/setstats/data"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents our sqlite3 database file.
type DB struct{ *gorm.DB }

//go:embed schema.sql
var schema string

// Open returns a connection to a migrated sqlite3 database file on disk,
// creating the file and running migrations if necessary.
func Open(filename string) (*DB, error) {
	gdb, err := gorm.Open(sqlite.Open(filename), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}

	db := &DB{gdb}

	if err := db.Exec(schema).Error; err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}

	return db, nil
}

type metaRow struct {
	ID          int `gorm:"primaryKey"`
	BuildID     string
	LastUpdated time.Time
	TotalShows  int
}

func (metaRow) TableName() string { return "index_meta" }

type songRow struct {
	Slug              string `gorm:"primaryKey"`
	Title             string
	AltTitles         string
	TotalPerformances int
	Position          int
}

func (songRow) TableName() string { return "songs" }

type performanceRow struct {
	SongSlug     string `gorm:"primaryKey"`
	ShowID       string
	Date         string
	VenueID      string
	VenueName    string
	VenueCity    string
	VenueCountry string
	Year         int
	Era          string
	Position     int `gorm:"primaryKey"`
}

func (performanceRow) TableName() string { return "performances" }

// Save replaces the stored index with idx, all inside one transaction:
// a reader never observes a half-written index.
func (db *DB) Save(idx *data.SongIndex) error {
	if idx == nil {
		return fmt.Errorf("no index to save")
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"performances", "songs", "index_meta"} {
			if err := tx.Exec("delete from " + table).Error; err != nil {
				return fmt.Errorf("error clearing table '%s': %w", table, err)
			}
		}

		if err := tx.Create(&metaRow{
			ID:          1,
			BuildID:     idx.BuildID,
			LastUpdated: idx.LastUpdated,
			TotalShows:  idx.TotalShows,
		}).Error; err != nil {
			return fmt.Errorf("error inserting index meta: %w", err)
		}

		for position, song := range idx.Songs {
			altTitles, err := json.Marshal(song.AltTitles)
			if err != nil {
				return fmt.Errorf("error encoding alt titles for '%s': %w", song.Slug, err)
			}
			if err := tx.Create(&songRow{
				Slug:              song.Slug,
				Title:             song.Title,
				AltTitles:         string(altTitles),
				TotalPerformances: song.TotalPerformances,
				Position:          position,
			}).Error; err != nil {
				return fmt.Errorf("error inserting song '%s': %w", song.Slug, err)
			}

			rows := make([]performanceRow, len(song.Shows))
			for i, show := range song.Shows {
				rows[i] = performanceRow{
					SongSlug:     song.Slug,
					ShowID:       show.ID,
					Date:         show.Date,
					VenueID:      show.Venue.ID,
					VenueName:    show.Venue.Name,
					VenueCity:    show.Venue.City,
					VenueCountry: show.Venue.Country,
					Year:         show.Year,
					Era:          show.Era,
					Position:     i,
				}
			}
			if len(rows) > 0 {
				if err := tx.CreateInBatches(rows, 100).Error; err != nil {
					return fmt.Errorf("error inserting performances for '%s': %w", song.Slug, err)
				}
			}
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("error saving index '%s': %w", idx.BuildID, err)
	}
	return nil
}

// Load reconstitutes the stored index. An empty database returns
// (nil, nil): no index has been built yet.
func (db *DB) Load() (*data.SongIndex, error) {
	var meta metaRow
	if err := db.First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading index meta: %w", err)
	}

	var songRows []songRow
	if err := db.Order("position").Find(&songRows).Error; err != nil {
		return nil, fmt.Errorf("error loading songs: %w", err)
	}

	var performanceRows []performanceRow
	if err := db.Order("song_slug, position").Find(&performanceRows).Error; err != nil {
		return nil, fmt.Errorf("error loading performances: %w", err)
	}

	showsBySlug := make(map[string][]data.ShowInfo, len(songRows))
	for _, row := range performanceRows {
		showsBySlug[row.SongSlug] = append(showsBySlug[row.SongSlug], data.ShowInfo{
			ID:   row.ShowID,
			Date: row.Date,
			Venue: data.Venue{
				ID:      row.VenueID,
				Name:    row.VenueName,
				City:    row.VenueCity,
				Country: row.VenueCountry,
			},
			Year: row.Year,
			Era:  row.Era,
		})
	}

	idx := &data.SongIndex{
		BuildID:     meta.BuildID,
		LastUpdated: meta.LastUpdated,
		TotalShows:  meta.TotalShows,
		Songs:       make([]data.SongIndexEntry, len(songRows)),
	}
	for i, row := range songRows {
		var altTitles []string
		if err := json.Unmarshal([]byte(row.AltTitles), &altTitles); err != nil {
			return nil, fmt.Errorf("error decoding alt titles for '%s': %w", row.Slug, err)
		}

		entry := data.SongIndexEntry{
			Title:             row.Title,
			Slug:              row.Slug,
			AltTitles:         altTitles,
			Shows:             showsBySlug[row.Slug],
			TotalPerformances: row.TotalPerformances,
		}

		// First/last aren't stored; recompute them from the show list.
		for s := range entry.Shows {
			show := entry.Shows[s]
			if entry.FirstPerformance == nil || data.CompareEventDates(show.Date, entry.FirstPerformance.Date) < 0 {
				first := show
				entry.FirstPerformance = &first
			}
			if entry.LastPerformance == nil || data.CompareEventDates(show.Date, entry.LastPerformance.Date) > 0 {
				last := show
				entry.LastPerformance = &last
			}
		}

		idx.Songs[i] = entry
	}

	return idx, nil
}
