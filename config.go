package churchsite

import "github.com/goliatone/go-churchsite/internal/runtimeconfig"

// Config exports the runtime configuration consumed by New.
type Config = runtimeconfig.Config

// SiteConfig exports the site identity section.
type SiteConfig = runtimeconfig.SiteConfig

// ContentConfig exports the content directory section.
type ContentConfig = runtimeconfig.ContentConfig

// CollectionConfig exports the common collection section.
type CollectionConfig = runtimeconfig.CollectionConfig

// EventsConfig exports the events section.
type EventsConfig = runtimeconfig.EventsConfig

// MinistriesConfig exports the ministries section.
type MinistriesConfig = runtimeconfig.MinistriesConfig

// NavigationConfig exports the navigation section.
type NavigationConfig = runtimeconfig.NavigationConfig

// LoggingConfig exports the logging section.
type LoggingConfig = runtimeconfig.LoggingConfig

// RouteConfig exports the list route section.
type RouteConfig = runtimeconfig.RouteConfig

// ItemRouteConfig exports the detail route section.
type ItemRouteConfig = runtimeconfig.ItemRouteConfig

// RobotsConfig exports the robots directives section.
type RobotsConfig = runtimeconfig.RobotsConfig

// Ministries list orderings.
const (
	MinistriesOrderPublishDate = runtimeconfig.MinistriesOrderPublishDate
	MinistriesOrderSlug        = runtimeconfig.MinistriesOrderSlug
)

// DefaultConfig returns the conventions the site shipped with.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads a TOML file over the defaults and validates the result.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.LoadFile(path)
}
