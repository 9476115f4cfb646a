// file: internal/config/config.go
// version: 1.1.0
// guid: d7d625bd-5a89-4564-96c3-a37b68e8c0fd

package config

import (
	"log"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application configuration. Values here are file/env/flag
// level defaults; database settings override them at runtime.
type Config struct {
	Host         string
	Port         string
	DatabasePath string

	// Check intervals as setting strings ("15m".."24h").
	ListFetchInterval    string
	RequestCheckInterval string

	// Match policy defaults.
	MatchTitleWeight  float64
	MatchAuthorWeight float64
	MatchThreshold    float64

	HardcoverAPIToken string
	SearchByISBNFirst bool

	// API request limiting.
	RateLimitPerMinute int
	RateLimitBurst     int
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", "8585")
	viper.SetDefault("database_path", "bookwatch.db")
	viper.SetDefault("list_fetch_interval", "6h")
	viper.SetDefault("request_check_interval", "6h")
	viper.SetDefault("match_title_weight", 0.6)
	viper.SetDefault("match_author_weight", 0.4)
	viper.SetDefault("match_threshold", 0.6)
	viper.SetDefault("search_by_isbn_first", false)
	viper.SetDefault("rate_limit_per_minute", 120)
	viper.SetDefault("rate_limit_burst", 30)

	AppConfig = Config{
		Host:                 viper.GetString("host"),
		Port:                 viper.GetString("port"),
		DatabasePath:         viper.GetString("database_path"),
		ListFetchInterval:    viper.GetString("list_fetch_interval"),
		RequestCheckInterval: viper.GetString("request_check_interval"),
		MatchTitleWeight:     viper.GetFloat64("match_title_weight"),
		MatchAuthorWeight:    viper.GetFloat64("match_author_weight"),
		MatchThreshold:       viper.GetFloat64("match_threshold"),
		HardcoverAPIToken:    viper.GetString("hardcover_api_token"),
		SearchByISBNFirst:    viper.GetBool("search_by_isbn_first"),
		RateLimitPerMinute:   viper.GetInt("rate_limit_per_minute"),
		RateLimitBurst:       viper.GetInt("rate_limit_burst"),
	}
}

// WatchConfig re-reads the config file on change and invokes onChange so
// the schedulers can pick up new intervals without a restart.
func WatchConfig(onChange func()) {
	viper.OnConfigChange(func(event fsnotify.Event) {
		log.Printf("[INFO] Config file changed: %s", event.Name)
		InitConfig()
		if onChange != nil {
			onChange()
		}
	})
	viper.WatchConfig()
}
