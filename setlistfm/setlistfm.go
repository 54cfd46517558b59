// Package setlistfm is a client for setlist.fm's REST API, reduced to
// the paged per-year artist setlists endpoint the index builder
// consumes.
package setlistfm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amonks/setstats/data"
	"github.com/amonks/setstats/index"
	"github.com/amonks/setstats/request"
)

const defaultBaseURL = "https://api.setlist.fm/rest/1.0"

// New creates a client with the given API key. setlist.fm rejects
// keyless requests, but construction succeeds either way so callers can
// defer the credential check to first use.
func New(apiKey string) *Client {
	return &Client{BaseURL: defaultBaseURL, apiKey: apiKey}
}

type Client struct {
	// BaseURL is settable for tests; New defaults it.
	BaseURL string

	apiKey string
}

// GetSetlistPage fetches one page of an act's setlists for one year.
// A page past the end returns (nil, nil). A 429 comes back wrapped
// around index.ErrRateLimited so the builder can cool down instead of
// hammering the service.
func (c *Client) GetSetlistPage(ctx context.Context, actID string, page, year int) ([]data.Setlist, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("no setlist.fm api key configured")
	}

	query := url.Values{}
	query.Set("p", strconv.Itoa(page))
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}

	endpoint := fmt.Sprintf("%s/artist/%s/setlists?%s", c.BaseURL, url.PathEscape(actID), query.Encode())
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("request error: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching setlists for '%s' year %d page %d: %w", actID, year, page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("setlist.fm throttled year %d page %d: %w", year, page, index.ErrRateLimited)
	}
	// A 404 past the last page is setlist.fm's end-of-pagination.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := request.Error(resp); err != nil {
		return nil, fmt.Errorf("fetch error: %w", err)
	}

	var results setlistsPage
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("setlists decode error: %w", err)
	}

	setlists := make([]data.Setlist, 0, len(results.Setlist))
	for _, raw := range results.Setlist {
		setlists = append(setlists, raw.toSetlist())
	}
	return setlists, nil
}

type setlistsPage struct {
	Setlist []rawSetlist `json:"setlist"`
}

type rawSetlist struct {
	ID        string `json:"id"`
	EventDate string `json:"eventDate"`
	Venue     struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		City struct {
			Name    string `json:"name"`
			Country struct {
				Name string `json:"name"`
			} `json:"country"`
		} `json:"city"`
	} `json:"venue"`
	Sets struct {
		Set []struct {
			Name   string `json:"name"`
			Encore int    `json:"encore"`
			Song   []struct {
				Name string `json:"name"`
			} `json:"song"`
		} `json:"set"`
	} `json:"sets"`
}

func (raw rawSetlist) toSetlist() data.Setlist {
	setlist := data.Setlist{
		ID:        raw.ID,
		EventDate: raw.EventDate,
		Venue: data.Venue{
			ID:      raw.Venue.ID,
			Name:    raw.Venue.Name,
			City:    raw.Venue.City.Name,
			Country: raw.Venue.City.Country.Name,
		},
	}
	for _, set := range raw.Sets.Set {
		name := set.Name
		if name == "" && set.Encore > 0 {
			name = fmt.Sprintf("Encore %d", set.Encore)
		}
		out := data.SetlistSet{Name: name}
		for _, song := range set.Song {
			if song.Name == "" {
				continue
			}
			out.Songs = append(out.Songs, song.Name)
		}
		setlist.Sets = append(setlist.Sets, out)
	}
	return setlist
}
