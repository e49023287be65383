package headlines

import (
	"errors"
	"fmt"

	"github.com/DeafMist/top-headlines/internal/models"
)

// Limit is the number of stories shown on every headline page.
const Limit = 5

// thumbnailIndex selects the multimedia rendition used as thumbnail.
const thumbnailIndex = 1

var (
	// ErrMissingThumbnail is returned by Images when a story carries fewer
	// than two multimedia entries.
	ErrMissingThumbnail = errors.New("story has no thumbnail rendition")
	// ErrMissingField is returned when a story lacks a key its page shows.
	ErrMissingField = errors.New("story is missing a field")
)

// Top returns the first n stories in upstream order.
func Top(stories []models.Story, n int) []models.Story {
	if n < 0 {
		n = 0
	}
	n = min(n, len(stories))
	out := make([]models.Story, n)
	copy(out, stories[:n])
	return out
}

// Titles keeps only the title of each story.
func Titles(stories []models.Story) ([]models.TitleView, error) {
	out := make([]models.TitleView, 0, len(stories))
	for i, s := range stories {
		if !s.HasTitle() {
			return nil, missing(i, s, "title")
		}
		out = append(out, models.TitleView{Title: s.Title})
	}
	return out, nil
}

// Links keeps title and url of each story.
func Links(stories []models.Story) ([]models.LinkView, error) {
	out := make([]models.LinkView, 0, len(stories))
	for i, s := range stories {
		if err := requireLink(i, s); err != nil {
			return nil, err
		}
		out = append(out, models.LinkView{Title: s.Title, URL: s.URL})
	}
	return out, nil
}

// Images keeps title and url and adds the url of the second multimedia
// rendition as thumbnail. A single story without that rendition fails the
// whole projection.
func Images(stories []models.Story) ([]models.ImageView, error) {
	out := make([]models.ImageView, 0, len(stories))
	for i, s := range stories {
		if err := requireLink(i, s); err != nil {
			return nil, err
		}
		if len(s.Multimedia) <= thumbnailIndex {
			return nil, fmt.Errorf("headline %d (%q) has %d multimedia entries: %w", i, s.Title, len(s.Multimedia), ErrMissingThumbnail)
		}
		thumb := s.Multimedia[thumbnailIndex]
		if !thumb.HasURL() {
			return nil, missing(i, s, fmt.Sprintf("multimedia[%d].url", thumbnailIndex))
		}
		out = append(out, models.ImageView{
			Title:     s.Title,
			URL:       s.URL,
			Thumbnail: thumb.URL,
		})
	}
	return out, nil
}

func requireLink(i int, s models.Story) error {
	if !s.HasTitle() {
		return missing(i, s, "title")
	}
	if !s.HasURL() {
		return missing(i, s, "url")
	}
	return nil
}

func missing(i int, s models.Story, field string) error {
	return fmt.Errorf("headline %d (%q) has no %s: %w", i, s.Title, field, ErrMissingField)
}
