// Package setlistweb scrapes setlist.fm's public HTML listing pages.
// It is the keyless fallback source: slower and more fragile than the
// REST API, but good enough to build an index from when no API key is
// configured.
package setlistweb

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/amonks/setstats/data"
	"github.com/amonks/setstats/request"
)

const defaultBaseURL = "https://www.setlist.fm"

// New creates a scraper for one act's listing pages. The slug is the
// path segment setlist.fm uses for the act, like
// "grateful-dead-bd6ad1a.html".
func New(actSlug string) *Client {
	return &Client{BaseURL: defaultBaseURL, actSlug: actSlug}
}

type Client struct {
	// BaseURL is settable for tests; New defaults it.
	BaseURL string

	actSlug string
}

// GetSetlistPage fetches and parses one listing page for one year. An
// empty page returns (nil, nil), which the caller reads as the end of
// that year's pagination.
func (c *Client) GetSetlistPage(ctx context.Context, actID string, page, year int) ([]data.Setlist, error) {
	url := fmt.Sprintf("%s/setlists/%s?page=%d", c.BaseURL, c.actSlug, page)
	if year > 0 {
		url = fmt.Sprintf("%s&year=%d", url, year)
	}

	doc, err := request.FetchHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("error fetching setlist page %d for year %d: %w", page, year, err)
	}

	var setlists []data.Setlist
	var findErr error
	doc.Find("div.setlistPreview").Each(func(i int, sel *goquery.Selection) {
		if findErr != nil {
			return
		}
		setlist, err := setlistElement{sel}.Setlist()
		if err != nil {
			findErr = err
			return
		}
		setlists = append(setlists, setlist)
	})
	if findErr != nil {
		return nil, findErr
	}

	return setlists, nil
}

// A setlistElement is the preview block for a single show on a listing
// page. It has methods for looking into that block and extracting
// information.
type setlistElement struct{ *goquery.Selection }

func (el setlistElement) Setlist() (data.Setlist, error) {
	var setlist data.Setlist
	var err error
	if setlist.ID, err = el.ID(); err != nil {
		return setlist, err
	}
	if setlist.EventDate, err = el.EventDate(); err != nil {
		return setlist, err
	}
	setlist.Venue = el.Venue()
	setlist.Sets = el.Sets()
	return setlist, nil
}

// ID extracts the setlist's id from its detail-page link, like
// "setlist/grateful-dead/1977/barton-hall-ithaca-ny-23d6ce27.html".
func (el setlistElement) ID() (string, error) {
	href, found := el.Find("a.summary").First().Attr("href")
	if !found {
		return "", fmt.Errorf("setlist preview has no summary link")
	}
	trimmed := strings.TrimSuffix(href, ".html")
	if i := strings.LastIndexByte(trimmed, '-'); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if trimmed == "" {
		return "", fmt.Errorf("no id in summary link '%s'", href)
	}
	return trimmed, nil
}

var months = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

// EventDate reassembles the date block's month/day/year spans into the
// DD-MM-YYYY form the rest of the system uses.
func (el setlistElement) EventDate() (string, error) {
	block := el.Find("div.dateBlock").First()
	month := strings.TrimSpace(block.Find("span.month").Text())
	day := strings.TrimSpace(block.Find("span.day").Text())
	year := strings.TrimSpace(block.Find("span.year").Text())

	mm, ok := months[month]
	if !ok {
		return "", fmt.Errorf("unrecognized month '%s' in date block", month)
	}
	if day == "" || year == "" {
		return "", fmt.Errorf("incomplete date block '%s %s %s'", month, day, year)
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", day, mm, year), nil
}

// Venue splits the details line, like "Barton Hall, Ithaca, NY, USA".
// A malformed line degrades to an empty venue rather than failing the
// whole page.
func (el setlistElement) Venue() data.Venue {
	details := strings.TrimSpace(el.Find("span.details").First().Text())
	parts := strings.Split(details, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var venue data.Venue
	if len(parts) > 0 {
		venue.Name = parts[0]
	}
	if len(parts) > 1 {
		venue.City = parts[1]
	}
	if len(parts) > 2 {
		venue.Country = parts[len(parts)-1]
	}
	return venue
}

// Sets collects the preview's song links into a single unnamed set; the
// listing page doesn't expose set boundaries.
func (el setlistElement) Sets() []data.SetlistSet {
	var songs []string
	el.Find("ol.songList a.songLabel, div.setlistList a.songLabel").Each(func(i int, sel *goquery.Selection) {
		name := strings.TrimSpace(sel.Text())
		if name == "" {
			return
		}
		songs = append(songs, name)
	})
	if len(songs) == 0 {
		return nil
	}
	return []data.SetlistSet{{Songs: songs}}
}
