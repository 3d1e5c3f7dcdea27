package tmdb

import (
	"strings"

	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
)

// Images resolves poster paths against the image CDN
type Images struct {
	baseURL     string
	placeholder string
}

// NewImages creates a resolver from the API configuration
func NewImages(cfg config.APIConfig) Images {
	return Images{
		baseURL:     strings.TrimRight(cfg.ImageBaseURL, "/"),
		placeholder: cfg.DefaultPosterPath,
	}
}

// PosterURL returns the full poster URL, or the placeholder path when the
// movie has no poster
func (i Images) PosterURL(m domain.Movie) string {
	if m.PosterPath == "" {
		return i.placeholder
	}
	return i.baseURL + "/" + strings.TrimLeft(m.PosterPath, "/")
}
