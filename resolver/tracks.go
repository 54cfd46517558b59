package resolver

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/amonks/setstats/archive"
	"github.com/amonks/setstats/data"
)

// audioFormats is a deliberately loose filter: upstream format labels
// are freeform ("VBR MP3", "24bit Flac"), so substring containment is
// the only workable test. SHN files are labeled "Shorten" upstream,
// which "shn" alone would miss.
var audioFormats = []string{"mp3", "ogg", "flac", "shn", "shorten", "vbr"}

// FindSongTracks narrows a recording's track list to the files matching
// a song title. When one or more tracks match, all of them come back,
// sorted MP3-first, then by track number, then by duration, and found
// is true. When none match, the full format-sorted listing comes back
// with found false, so the caller can offer "couldn't pin the song,
// here's everything". Fetch failures yield an empty list, never an
// error.
func (r *Resolver) FindSongTracks(ctx context.Context, identifier, songTitle string) (tracks []data.AudioTrack, found bool) {
	all := r.trackList(ctx, identifier)
	if len(all) == 0 {
		return nil, false
	}

	var matched []data.AudioTrack
	if songTitle != "" {
		for _, track := range all {
			if r.matchesSong(track, songTitle) {
				matched = append(matched, track)
			}
		}
	}

	if len(matched) > 0 {
		sortMatched(matched)
		return matched, true
	}

	sortByFormat(all)
	return all, false
}

func audioTracks(identifier string, files []archive.File) []data.AudioTrack {
	var tracks []data.AudioTrack
	for _, file := range files {
		if !isAudioFormat(file.Format) {
			continue
		}

		track := data.AudioTrack{
			Name:   file.Name,
			URL:    archive.DownloadURL(identifier, file.Name),
			Size:   file.Size.Int64(),
			Format: file.Format,
			Title:  file.Title,
		}
		if track.Title == "" {
			track.Title = file.Name
		}
		if seconds, ok := ParseTrackLength(file.Length); ok {
			track.Duration = seconds
		}
		track.TrackNumber = parseTrackNumber(file.Track)

		tracks = append(tracks, track)
	}
	return tracks
}

func isAudioFormat(format string) bool {
	lower := strings.ToLower(format)
	for _, want := range audioFormats {
		if strings.Contains(lower, want) {
			return true
		}
	}
	return false
}

// ParseTrackLength parses a colon-delimited time string: two segments
// are M:SS, three are H:MM:SS. Anything else (including the empty
// string) is "no duration", never an error.
func ParseTrackLength(length string) (seconds int, ok bool) {
	parts := strings.Split(length, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, false
	}
	nums := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, false
		}
		nums[i] = n
	}
	if len(nums) == 2 {
		return nums[0]*60 + nums[1], true
	}
	return nums[0]*3600 + nums[1]*60 + nums[2], true
}

// parseTrackNumber handles both "04" and "4/21" style track fields;
// zero means unknown.
func parseTrackNumber(track string) int {
	track = strings.TrimSpace(track)
	if i := strings.IndexByte(track, '/'); i >= 0 {
		track = track[:i]
	}
	n, err := strconv.Atoi(track)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// matchesSong reports whether a track looks like a performance of the
// song: either title contains the other, or enough words overlap.
func (r *Resolver) matchesSong(track data.AudioTrack, songTitle string) bool {
	trackTitle := strings.ToLower(track.Title)
	if trackTitle == "" {
		trackTitle = strings.ToLower(track.Name)
	}
	song := strings.ToLower(songTitle)

	return strings.Contains(trackTitle, song) ||
		strings.Contains(song, trackTitle) ||
		r.wordOverlap(trackTitle, song)
}

// wordOverlap counts track words (longer than 2 chars) that contain or
// are contained by some song word, and succeeds when the count reaches
// OverlapRatio of the smaller title's word count.
func (r *Resolver) wordOverlap(trackTitle, songTitle string) bool {
	trackWords := strings.Fields(trackTitle)
	songWords := strings.Fields(songTitle)
	if len(trackWords) == 0 || len(songWords) == 0 {
		return false
	}

	common := 0
	for _, word := range trackWords {
		if len(word) <= 2 {
			continue
		}
		for _, songWord := range songWords {
			if len(songWord) <= 2 {
				continue
			}
			if strings.Contains(word, songWord) || strings.Contains(songWord, word) {
				common++
				break
			}
		}
	}

	ratio := r.OverlapRatio
	if ratio <= 0 {
		ratio = 0.5
	}
	smaller := len(trackWords)
	if len(songWords) < smaller {
		smaller = len(songWords)
	}
	return float64(common) >= float64(smaller)*ratio
}

// sortMatched orders matched tracks for playback: streamable MP3s
// first, then track number, then duration. Stable, so untouched pairs
// keep listing order.
func sortMatched(tracks []data.AudioTrack) {
	sort.SliceStable(tracks, func(i, j int) bool {
		a, b := tracks[i], tracks[j]
		if am, bm := isMP3(a), isMP3(b); am != bm {
			return am
		}
		if a.TrackNumber > 0 && b.TrackNumber > 0 && a.TrackNumber != b.TrackNumber {
			return a.TrackNumber < b.TrackNumber
		}
		if a.Duration > 0 && b.Duration > 0 && a.Duration != b.Duration {
			return a.Duration < b.Duration
		}
		return false
	})
}

func sortByFormat(tracks []data.AudioTrack) {
	sort.SliceStable(tracks, func(i, j int) bool {
		return isMP3(tracks[i]) && !isMP3(tracks[j])
	})
}

func isMP3(track data.AudioTrack) bool {
	return strings.Contains(strings.ToLower(track.Format), "mp3")
}
