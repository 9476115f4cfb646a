// file: internal/settings/settings.go
// version: 1.1.0
// guid: 99738dd6-8f2e-4d34-a149-77f4d07e4919

// Package settings resolves runtime-tunable values. Database settings win
// over file configuration so match weights and check intervals can be tuned
// without a redeploy.
package settings

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jdfalk/bookwatch/internal/config"
	"github.com/jdfalk/bookwatch/internal/database"
	"github.com/jdfalk/bookwatch/internal/matcher"
)

// Setting keys.
const (
	KeyListFetchInterval    = "list_fetch_interval"
	KeyRequestCheckInterval = "request_check_interval"
	KeyMatchTitleWeight     = "match_title_weight"
	KeyMatchAuthorWeight    = "match_author_weight"
	KeyMatchThreshold       = "match_threshold"
	KeyHardcoverAPIToken    = "hardcover_api_token"
	KeySearchByISBNFirst    = "search_by_isbn_first"
)

// AllowedIntervals is the closed set of check intervals.
var AllowedIntervals = map[string]time.Duration{
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"6h":  6 * time.Hour,
	"12h": 12 * time.Hour,
	"24h": 24 * time.Hour,
}

const defaultInterval = 6 * time.Hour

// Service reads and writes settings through the store.
type Service struct {
	store database.Store
}

func New(store database.Store) *Service {
	return &Service{store: store}
}

func (s *Service) get(key, fileValue string) string {
	value, err := s.store.GetSetting(key)
	if err != nil {
		log.Printf("[WARN] Failed to read setting %s: %v", key, err)
		return fileValue
	}
	if value == "" {
		return fileValue
	}
	return value
}

func (s *Service) interval(key, fileValue string) time.Duration {
	raw := s.get(key, fileValue)
	if d, ok := AllowedIntervals[raw]; ok {
		return d
	}
	if raw != "" {
		log.Printf("[WARN] Invalid interval %q for %s, using default", raw, key)
	}
	return defaultInterval
}

// ListFetchInterval returns the period of the list checker.
func (s *Service) ListFetchInterval() time.Duration {
	return s.interval(KeyListFetchInterval, config.AppConfig.ListFetchInterval)
}

// RequestCheckInterval returns the period of the request checker.
func (s *Service) RequestCheckInterval() time.Duration {
	return s.interval(KeyRequestCheckInterval, config.AppConfig.RequestCheckInterval)
}

func (s *Service) float(key string, fileValue float64) float64 {
	raw := s.get(key, "")
	if raw == "" {
		return fileValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("[WARN] Invalid value %q for %s, using default", raw, key)
		return fileValue
	}
	return v
}

// MatchPolicy resolves the scoring weights and threshold.
func (s *Service) MatchPolicy() matcher.MatchPolicy {
	policy := matcher.MatchPolicy{
		TitleWeight:  s.float(KeyMatchTitleWeight, config.AppConfig.MatchTitleWeight),
		AuthorWeight: s.float(KeyMatchAuthorWeight, config.AppConfig.MatchAuthorWeight),
		Threshold:    s.float(KeyMatchThreshold, config.AppConfig.MatchThreshold),
	}
	if policy.TitleWeight < 0 || policy.AuthorWeight < 0 || policy.TitleWeight+policy.AuthorWeight <= 0 {
		return matcher.DefaultPolicy()
	}
	return policy
}

// HardcoverToken returns the Hardcover API token, if configured.
func (s *Service) HardcoverToken() string {
	return s.get(KeyHardcoverAPIToken, config.AppConfig.HardcoverAPIToken)
}

// SearchByISBNFirst reports whether searches should try ISBN before
// title/author.
func (s *Service) SearchByISBNFirst() bool {
	raw := s.get(KeySearchByISBNFirst, strconv.FormatBool(config.AppConfig.SearchByISBNFirst))
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return config.AppConfig.SearchByISBNFirst
	}
	return v
}

// Set validates and stores a setting value.
func (s *Service) Set(key, value string) error {
	switch key {
	case KeyListFetchInterval, KeyRequestCheckInterval:
		if _, ok := AllowedIntervals[value]; !ok {
			return fmt.Errorf("invalid interval %q (allowed: 15m, 30m, 1h, 6h, 12h, 24h)", value)
		}
	case KeyMatchTitleWeight, KeyMatchAuthorWeight:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > 1 {
			return fmt.Errorf("invalid weight %q (must be in [0, 1])", value)
		}
	case KeyMatchThreshold:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v > 1 {
			return fmt.Errorf("invalid threshold %q (must be in [0, 1])", value)
		}
	case KeyHardcoverAPIToken:
		// opaque
	case KeySearchByISBNFirst:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("invalid boolean %q", value)
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return s.store.SetSetting(key, value)
}

// All returns every stored setting.
func (s *Service) All() ([]database.Setting, error) {
	return s.store.GetAllSettings()
}
