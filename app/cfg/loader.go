package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Data sources
	FeedURL     string `long:"feed-url" env:"FEED_URL" default:"https://anchor.fm/s/f75630a4/podcast/rss" description:"Podcast RSS feed URL"`
	EpisodesDir string `long:"episodes-dir" env:"EPISODES_DIR" default:"./Context/Episodes" description:"Directory containing per-episode metadata folders"`
	MappingFile string `long:"mapping-file" env:"MAPPING_FILE" description:"Optional YAML file overriding the built-in episode number to folder mapping"`

	// Application configuration
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	CacheTTL         int    `long:"cache-ttl" env:"CACHE_TTL" default:"3600" description:"Episode cache TTL in seconds"`
	FetchTimeout     int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"30" description:"RSS fetch timeout in seconds"`
	PlaceholderImage string `long:"placeholder-image" env:"PLACEHOLDER_IMAGE" default:"/images/earth-hero.png" description:"Image URL used when an episode has no cover art"`
	APIAccessKey     string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for admin endpoints (optional)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"HowToSolveThis/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, Asia/Jerusalem)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		FeedURL:          raw.FeedURL,
		EpisodesDir:      raw.EpisodesDir,
		MappingFile:      raw.MappingFile,
		Port:             raw.Port,
		CacheTTL:         raw.CacheTTL,
		FetchTimeout:     raw.FetchTimeout,
		PlaceholderImage: raw.PlaceholderImage,
		APIAccessKey:     raw.APIAccessKey,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
