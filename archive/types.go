package archive

import (
	"encoding/json"
	"strconv"
	"strings"
)

// A Doc is one advanced-search result. Archive metadata is loosely
// typed upstream (single-valued fields come back as either a scalar or
// an array depending on the item), so the string fields tolerate both.
type Doc struct {
	Identifier string     `json:"identifier"`
	Title      Text       `json:"title"`
	Year       Number     `json:"year"`
	Venue      Text       `json:"venue"`
	Coverage   Text       `json:"coverage"`
	Source     Text       `json:"source"`
	Format     StringList `json:"format"`
}

// A File is one entry in an item's file listing.
type File struct {
	Name   string `json:"name"`
	Size   Number `json:"size"`
	Format string `json:"format"`

	// Length is a colon-delimited duration like "11:30" or "1:02:05",
	// when present.
	Length string `json:"length"`

	// Track is a track number, sometimes "04", sometimes "4/21".
	Track string `json:"track"`

	Title string `json:"title"`
}

// Text unmarshals from a JSON string or an array of strings, keeping
// the first value.
type Text string

func (t *Text) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(bs, &list); err != nil {
		return err
	}
	if len(list) > 0 {
		*t = Text(list[0])
	}
	return nil
}

func (t Text) String() string { return string(t) }

// StringList unmarshals from a JSON string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err == nil {
		if s == "" {
			*l = nil
		} else {
			*l = StringList{s}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(bs, &list); err != nil {
		return err
	}
	*l = StringList(list)
	return nil
}

// Number unmarshals from a JSON number or a numeric string; sizes and
// years appear both ways in archive metadata. Unparseable values decode
// to zero rather than failing the record.
type Number int64

func (n *Number) UnmarshalJSON(bs []byte) error {
	var i int64
	if err := json.Unmarshal(bs, &i); err == nil {
		*n = Number(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(bs, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*n = 0
		return nil
	}
	parsed, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(parsed)
	return nil
}

func (n Number) Int() int     { return int(n) }
func (n Number) Int64() int64 { return int64(n) }
