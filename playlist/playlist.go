// Package playlist renders track lists as M3U8 media playlists, the
// format streaming audio players expect.
package playlist

import (
	"fmt"

	"github.com/amonks/setstats/data"
	"github.com/grafov/m3u8"
)

// Render encodes tracks as a VOD media playlist. Track order is
// preserved; durations of zero (unknown) are passed through and players
// treat them as unspecified. An empty track list is an error: an empty
// playlist is never what the caller wants.
func Render(name string, tracks []data.AudioTrack) (string, error) {
	if len(tracks) == 0 {
		return "", fmt.Errorf("no tracks to render for playlist '%s'", name)
	}

	pl, err := m3u8.NewMediaPlaylist(0, uint(len(tracks)))
	if err != nil {
		return "", fmt.Errorf("error creating playlist '%s': %w", name, err)
	}
	pl.MediaType = m3u8.VOD

	for _, track := range tracks {
		if err := pl.Append(track.URL, float64(track.Duration), track.Title); err != nil {
			return "", fmt.Errorf("error appending track '%s': %w", track.Name, err)
		}
	}
	pl.Close()

	return pl.Encode().String(), nil
}
