package config

// Config contains all application settings
type Config struct {
	BindPort      int    `mapstructure:"PORT" yaml:"port"`
	BindHost      string `mapstructure:"HOST" yaml:"host"`
	DatabaseURL   string `mapstructure:"DATABASE_URL" yaml:"database_url"`
	NATSServerURL string `mapstructure:"NATS_URL" yaml:"nats_url"`

	// Twitter recent search API
	TwitterAPIURL      string `mapstructure:"TWITTER_API_URL" yaml:"twitter_api_url"`
	TwitterBearerToken string `mapstructure:"TWITTER_BEARER_TOKEN" yaml:"twitter_bearer_token"`

	// Watch settings
	WatchKeyword     string  `mapstructure:"WATCH_KEYWORD" yaml:"watch_keyword"`
	FetchWindowHours int     `mapstructure:"FETCH_WINDOW_HOURS" yaml:"fetch_window_hours"`
	FetchPageSize    int     `mapstructure:"FETCH_PAGE_SIZE" yaml:"fetch_page_size"`
	ScanWindowHours  int     `mapstructure:"SCAN_WINDOW_HOURS" yaml:"scan_window_hours"`
	BinWidthSeconds  int     `mapstructure:"BIN_WIDTH_SECONDS" yaml:"bin_width_seconds"`
	StdevThreshold   float64 `mapstructure:"STDEV_THRESHOLD" yaml:"stdev_threshold"`
	CooldownHours    int     `mapstructure:"COOLDOWN_HOURS" yaml:"cooldown_hours"`

	// Watcher schedules (cron expressions) and alert channel
	FetchSchedule   string `mapstructure:"FETCH_SCHEDULE" yaml:"fetch_schedule"`
	AnalyzeSchedule string `mapstructure:"ANALYZE_SCHEDULE" yaml:"analyze_schedule"`
	AlertSubject    string `mapstructure:"ALERT_SUBJECT" yaml:"alert_subject"`

	// Version
	BuildVersion string `yaml:"-"`
	BuildHash    string `yaml:"-"`
	BuildTime    string `yaml:"-"`
}
