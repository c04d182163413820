package episodes

import (
	"github.com/bensahar7/howtosolvethis/app/feed"
	"github.com/bensahar7/howtosolvethis/app/metadata"
)

// Enriched is a feed episode widened with its matched local metadata.
// Metadata is nil when no mapping or folder match exists; pages render the
// feed fields alone in that case.
type Enriched struct {
	feed.Episode
	Metadata *metadata.Meta `json:"metadata"`
}

// Stats summarizes the podcast for the landing page.
type Stats struct {
	TotalEpisodes     int `json:"totalEpisodes"`
	TotalSeasons      int `json:"totalSeasons"`
	CompaniesFeatured int `json:"companiesFeatured"`
}
