// Package runtimeconfig holds the configuration consumed by the content
// services: site identity, per-collection permalink patterns and list
// routes, and logging options.
package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	urlkit "github.com/goliatone/go-urlkit"
)

var ErrTimeZoneInvalid = errors.New("site config: time zone is not a valid IANA name")
var ErrPermalinkPatternRequired = errors.New("site config: permalink pattern is required")
var ErrMinistriesOrderInvalid = errors.New("site config: ministries order must be publish-date or slug")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")

// Config aggregates every tunable the content layer consumes. Fields use
// simple types so a TOML file can populate them directly.
type Config struct {
	Site       SiteConfig       `toml:"site"`
	Content    ContentConfig    `toml:"content"`
	Events     EventsConfig     `toml:"events"`
	Sermons    CollectionConfig `toml:"sermons"`
	Speakers   CollectionConfig `toml:"speakers"`
	Series     CollectionConfig `toml:"series"`
	Ministries MinistriesConfig `toml:"ministries"`
	Navigation NavigationConfig `toml:"navigation"`
	Logging    LoggingConfig    `toml:"logging"`
}

// SiteConfig identifies the site and its URL conventions.
type SiteConfig struct {
	Name          string `toml:"name"`
	Site          string `toml:"site"`
	Base          string `toml:"base"`
	TrailingSlash bool   `toml:"trailing_slash"`
	// TimeZone fixes the reference zone for calendar-day boundaries.
	TimeZone string `toml:"time_zone"`
}

// ContentConfig points at the content root. Each collection loads from a
// subdirectory named after its kind.
type ContentConfig struct {
	Dir string `toml:"dir"`
}

// RobotsConfig carries the indexing directives exposed verbatim to callers.
type RobotsConfig struct {
	Index  bool `toml:"index"`
	Follow bool `toml:"follow"`
}

// RouteConfig describes one list-style route.
type RouteConfig struct {
	Enabled  bool         `toml:"enabled"`
	Pathname string       `toml:"pathname"`
	Robots   RobotsConfig `toml:"robots"`
}

// ItemRouteConfig describes detail pages generated from a permalink pattern.
type ItemRouteConfig struct {
	Enabled   bool         `toml:"enabled"`
	Permalink string       `toml:"permalink"`
	Robots    RobotsConfig `toml:"robots"`
}

// CollectionConfig is the common shape for simple collections.
type CollectionConfig struct {
	List RouteConfig     `toml:"list"`
	Item ItemRouteConfig `toml:"item"`
}

// EventsConfig extends the common shape with event-specific knobs.
type EventsConfig struct {
	List            RouteConfig     `toml:"list"`
	Item            ItemRouteConfig `toml:"item"`
	DefaultMinistry string          `toml:"default_ministry"`
}

// MinistriesConfig extends the common shape with category/tag routes and
// list ordering.
type MinistriesConfig struct {
	Enabled  bool            `toml:"enabled"`
	List     RouteConfig     `toml:"list"`
	Item     ItemRouteConfig `toml:"item"`
	Category RouteConfig     `toml:"category"`
	Tag      RouteConfig     `toml:"tag"`
	// Order is "publish-date" (descending, the default) or "slug" (ascending).
	Order        string `toml:"order"`
	PostsPerPage int    `toml:"posts_per_page"`
}

// NavigationConfig carries the urlkit route tree used by link builders.
type NavigationConfig struct {
	RouteConfig  *urlkit.Config `toml:"-"`
	DefaultGroup string         `toml:"default_group"`
}

// LoggingConfig captures go-logger options.
type LoggingConfig struct {
	Level     string   `toml:"level"`
	Format    string   `toml:"format"`
	AddSource bool     `toml:"add_source"`
	Focus     []string `toml:"focus"`
}

const (
	MinistriesOrderPublishDate = "publish-date"
	MinistriesOrderSlug        = "slug"
)

// DefaultConfig returns the conventions the site shipped with.
func DefaultConfig() Config {
	robotsOn := RobotsConfig{Index: true, Follow: true}
	return Config{
		Site: SiteConfig{
			Name:          "churchsite",
			Base:          "/",
			TrailingSlash: false,
			TimeZone:      "America/Los_Angeles",
		},
		Content: ContentConfig{Dir: "content"},
		Events: EventsConfig{
			List:            RouteConfig{Enabled: true, Pathname: "events", Robots: robotsOn},
			Item:            ItemRouteConfig{Enabled: true, Permalink: "events/%slug%", Robots: robotsOn},
			DefaultMinistry: "default",
		},
		Sermons: CollectionConfig{
			List: RouteConfig{Enabled: true, Pathname: "sermons", Robots: robotsOn},
			Item: ItemRouteConfig{Enabled: true, Permalink: "sermons/%slug%", Robots: robotsOn},
		},
		Speakers: CollectionConfig{
			List: RouteConfig{Enabled: true, Pathname: "speakers", Robots: robotsOn},
			Item: ItemRouteConfig{Enabled: true, Permalink: "speakers/%slug%", Robots: robotsOn},
		},
		Series: CollectionConfig{
			List: RouteConfig{Enabled: true, Pathname: "series", Robots: robotsOn},
			Item: ItemRouteConfig{Enabled: true, Permalink: "series/%slug%", Robots: robotsOn},
		},
		Ministries: MinistriesConfig{
			Enabled:      true,
			List:         RouteConfig{Enabled: true, Pathname: "ministries", Robots: robotsOn},
			Item:         ItemRouteConfig{Enabled: true, Permalink: "ministries/%slug%", Robots: robotsOn},
			Category:     RouteConfig{Enabled: true, Pathname: "category", Robots: RobotsConfig{Index: true, Follow: true}},
			Tag:          RouteConfig{Enabled: true, Pathname: "tag", Robots: RobotsConfig{Index: false, Follow: true}},
			Order:        MinistriesOrderPublishDate,
			PostsPerPage: 6,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs structural and consistency checks.
func (cfg Config) Validate() error {
	if err := validation.ValidateStruct(&cfg.Site,
		validation.Field(&cfg.Site.TimeZone, validation.Required),
	); err != nil {
		return fmt.Errorf("site config: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Site.TimeZone); err != nil {
		return fmt.Errorf("%w: %s", ErrTimeZoneInvalid, cfg.Site.TimeZone)
	}

	patterns := map[string]string{
		"events":     cfg.Events.Item.Permalink,
		"sermons":    cfg.Sermons.Item.Permalink,
		"speakers":   cfg.Speakers.Item.Permalink,
		"series":     cfg.Series.Item.Permalink,
		"ministries": cfg.Ministries.Item.Permalink,
	}
	for kind, pattern := range patterns {
		if strings.TrimSpace(pattern) == "" {
			return fmt.Errorf("%w: %s", ErrPermalinkPatternRequired, kind)
		}
	}

	switch cfg.Ministries.Order {
	case "", MinistriesOrderPublishDate, MinistriesOrderSlug:
	default:
		return fmt.Errorf("%w: %s", ErrMinistriesOrderInvalid, cfg.Ministries.Order)
	}

	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}

	return nil
}

// Location resolves the configured time zone. Validate guards against bad
// names, so lookup failures fall back to UTC rather than erroring twice.
func (cfg Config) Location() *time.Location {
	loc, err := time.LoadLocation(cfg.Site.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
