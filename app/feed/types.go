package feed

import (
	"time"
)

// Episode is a normalized item from the podcast RSS feed. It carries the
// feed's authoritative identity (Number) used to join against local metadata.
type Episode struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	PublishedAt      time.Time `json:"pubDate"`
	ImageURL         string    `json:"imageUrl"`
	AudioURL         string    `json:"audioUrl"`
	GUID             string    `json:"guid"`
	Duration         string    `json:"duration,omitempty"`
	Number           int       `json:"episodeNumber"`
	SpotifyEpisodeID string    `json:"spotifyEpisodeId,omitempty"`
}
