package models

import "encoding/json"

// Story is a single entry of the top stories "results" array. Only the
// fields the pages use are decoded.
type Story struct {
	Title      string       `json:"title"`
	URL        string       `json:"url"`
	Multimedia []Multimedia `json:"multimedia"`

	absent fieldMask
}

// Multimedia describes one image rendition attached to a story.
type Multimedia struct {
	URL     string `json:"url"`
	Format  string `json:"format,omitempty"`
	Height  int    `json:"height,omitempty"`
	Width   int    `json:"width,omitempty"`
	Caption string `json:"caption,omitempty"`

	absent fieldMask
}

// fieldMask records keys that were absent (or null) in the decoded JSON.
type fieldMask uint8

const (
	fieldTitle fieldMask = 1 << iota
	fieldURL
)

// HasTitle reports whether the upstream entry carried a "title".
func (s Story) HasTitle() bool { return s.absent&fieldTitle == 0 }

// HasURL reports whether the upstream entry carried a "url".
func (s Story) HasURL() bool { return s.absent&fieldURL == 0 }

// HasURL reports whether the rendition carried a "url".
func (m Multimedia) HasURL() bool { return m.absent&fieldURL == 0 }

// UnmarshalJSON decodes a story and remembers which keys were missing.
func (s *Story) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title      *string      `json:"title"`
		URL        *string      `json:"url"`
		Multimedia []Multimedia `json:"multimedia"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Story{Multimedia: raw.Multimedia}
	if raw.Title != nil {
		s.Title = *raw.Title
	} else {
		s.absent |= fieldTitle
	}
	if raw.URL != nil {
		s.URL = *raw.URL
	} else {
		s.absent |= fieldURL
	}
	return nil
}

// UnmarshalJSON decodes a rendition and remembers whether "url" was missing.
func (m *Multimedia) UnmarshalJSON(data []byte) error {
	var raw struct {
		URL     *string `json:"url"`
		Format  string  `json:"format"`
		Height  int     `json:"height"`
		Width   int     `json:"width"`
		Caption string  `json:"caption"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Multimedia{Format: raw.Format, Height: raw.Height, Width: raw.Width, Caption: raw.Caption}
	if raw.URL != nil {
		m.URL = *raw.URL
	} else {
		m.absent |= fieldURL
	}
	return nil
}

// TitleView is the /headlines projection.
type TitleView struct {
	Title string `json:"title"`
}

// LinkView is the /link projection.
type LinkView struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ImageView is the /images projection.
type ImageView struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
}
