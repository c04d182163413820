package episodes

import (
	"context"

	"github.com/bensahar7/howtosolvethis/app/feed"
	"github.com/bensahar7/howtosolvethis/app/metadata"
)

// FeedSource provides normalized episodes from the public RSS feed.
type FeedSource interface {
	Run(ctx context.Context) ([]feed.Episode, error)
}

// MetadataSource provides parsed local metadata records and lazy transcript
// loading by folder name.
type MetadataSource interface {
	LoadAll() ([]metadata.Meta, error)
	LoadTranscript(folder string) (string, bool)
}
