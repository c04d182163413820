package cfg

type Cfg struct {
	// Data sources
	FeedURL     string
	EpisodesDir string
	MappingFile string

	// Application configuration
	Port             string
	CacheTTL         int
	FetchTimeout     int
	PlaceholderImage string
	APIAccessKey     string

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
