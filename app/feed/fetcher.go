package feed

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"
)

// seasonOffsets converts iTunes season/episode pairs into the absolute
// episode numbering used by the public feed. Season 1 covers episodes 1-10,
// season 2 continues at 11. A third season has no agreed offset yet and must
// be added here once its numbering is confirmed.
var seasonOffsets = map[int]int{
	1: 0,
	2: 10,
}

var (
	hebrewEpisodeRe  = regexp.MustCompile(`פרק\s*(\d+)`)
	englishEpisodeRe = regexp.MustCompile(`(?i)(?:episode|ep)\s*(\d+)`)
	spotifyEpisodeRe = regexp.MustCompile(`spotify\.com/episode/([a-zA-Z0-9]+)`)
)

type Fetcher struct {
	httpClient       *http.Client
	gofeedParser     *gofeed.Parser
	url              string
	userAgent        string
	placeholderImage string
	timeout          time.Duration
}

func NewFetcher(httpClient *http.Client, url, userAgent, placeholderImage string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		httpClient:       httpClient,
		gofeedParser:     gofeed.NewParser(),
		url:              url,
		userAgent:        userAgent,
		placeholderImage: placeholderImage,
		timeout:          timeout,
	}
}

// Run fetches the configured RSS feed and returns its normalized episodes,
// oldest last (feed order). Callers treat an error as "feed unavailable".
func (f *Fetcher) Run(ctx context.Context) ([]Episode, error) {
	data, err := f.fetch(ctx)
	if err != nil {
		return nil, err
	}

	feed, err := f.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	channelImage := ""
	if feed.Image != nil {
		channelImage = feed.Image.URL
	}

	episodes := make([]Episode, 0, len(feed.Items))
	for i, item := range feed.Items {
		episodes = append(episodes, f.normalizeItem(item, i, len(feed.Items), channelImage))
	}

	slog.Debug("Feed fetched", "url", f.url, "episodes", len(episodes))
	return episodes, nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]byte, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func (f *Fetcher) normalizeItem(item *gofeed.Item, index, total int, channelImage string) Episode {
	episode := Episode{
		Title:       cmp.Or(item.Title, "Untitled Episode"),
		Description: cmp.Or(item.Content, item.Description),
		GUID:        item.GUID,
	}

	if item.PublishedParsed != nil {
		episode.PublishedAt = *item.PublishedParsed
	} else {
		episode.PublishedAt = time.Now().UTC()
	}

	itunesImage := ""
	if item.ITunesExt != nil {
		itunesImage = item.ITunesExt.Image
		episode.Duration = item.ITunesExt.Duration
	}
	episode.ImageURL = cmp.Or(itunesImage, channelImage, f.placeholderImage)

	episode.Number = f.resolveEpisodeNumber(item, index, total)

	episode.SpotifyEpisodeID = extractSpotifyEpisodeID(item)

	// Prefer a canonical Spotify URL over the item link or raw enclosure
	spotifyURL := ""
	if episode.SpotifyEpisodeID != "" {
		spotifyURL = "https://open.spotify.com/episode/" + episode.SpotifyEpisodeID
	}
	enclosureURL := ""
	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enclosureURL = item.Enclosures[0].URL
	}
	episode.AudioURL = cmp.Or(spotifyURL, item.Link, enclosureURL)

	if episode.GUID == "" {
		episode.GUID = cmp.Or(item.Link, fmt.Sprintf("episode-%d", index))
	}

	return episode
}

// resolveEpisodeNumber derives the absolute episode number, in priority
// order: iTunes season/episode via the offset table, a Hebrew "פרק N" title
// pattern, an English "Episode N"/"epN" title pattern, and finally the
// reverse positional index (oldest-first order) as a known-fuzzy last resort.
func (f *Fetcher) resolveEpisodeNumber(item *gofeed.Item, index, total int) int {
	if item.ITunesExt != nil {
		season, _ := strconv.Atoi(item.ITunesExt.Season)
		episodeInSeason, _ := strconv.Atoi(item.ITunesExt.Episode)
		if season > 0 && episodeInSeason > 0 {
			if offset, ok := seasonOffsets[season]; ok {
				return offset + episodeInSeason
			}
		}
	}

	if m := hebrewEpisodeRe.FindStringSubmatch(item.Title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	if m := englishEpisodeRe.FindStringSubmatch(item.Title); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	number := total - index
	slog.Warn("Could not extract episode number from title, using reverse index",
		"title", item.Title, "number", number)
	return number
}

func extractSpotifyEpisodeID(item *gofeed.Item) string {
	if m := spotifyEpisodeRe.FindStringSubmatch(item.Link); m != nil {
		return m[1]
	}
	if m := spotifyEpisodeRe.FindStringSubmatch(item.GUID); m != nil {
		return m[1]
	}
	return ""
}
