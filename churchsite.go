// Package churchsite assembles the content services behind a church
// website: events, sermons, speakers, series, and ministry pages, plus the
// navigation built on top of them. Collections load lazily from a content
// directory and stay cached until reset.
package churchsite

import (
	"io/fs"
	"os"
	"time"

	"github.com/goliatone/go-churchsite/events"
	"github.com/goliatone/go-churchsite/internal/logging"
	"github.com/goliatone/go-churchsite/internal/logging/gologger"
	"github.com/goliatone/go-churchsite/internal/markdown"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/ministries"
	"github.com/goliatone/go-churchsite/navigation"
	"github.com/goliatone/go-churchsite/permalink"
	"github.com/goliatone/go-churchsite/series"
	"github.com/goliatone/go-churchsite/sermons"
	"github.com/goliatone/go-churchsite/speakers"
)

// EventService exports the events service contract.
type EventService = events.Service

// SermonService exports the sermons service contract.
type SermonService = sermons.Service

// SpeakerService exports the speakers service contract.
type SpeakerService = speakers.Service

// SeriesService exports the series service contract.
type SeriesService = series.Service

// MinistryService exports the ministries service contract.
type MinistryService = ministries.Service

// NavigationService exports the navigation service contract.
type NavigationService = navigation.Service

// Option overrides a collaborator during construction.
type Option func(*Module)

// WithLoggerProvider replaces the provider built from the logging config.
func WithLoggerProvider(provider logging.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.loggers = provider
		}
	}
}

// WithLoader replaces the filesystem-backed record loader.
func WithLoader(loader source.Loader) Option {
	return func(m *Module) {
		if loader != nil {
			m.loader = loader
		}
	}
}

// WithContentFS loads records from the given filesystem instead of the
// configured content directory.
func WithContentFS(fsys fs.FS) Option {
	return func(m *Module) {
		if fsys != nil {
			m.contentFS = fsys
		}
	}
}

// WithRenderer replaces the markdown renderer used for ministry pages.
func WithRenderer(renderer markdown.Renderer) Option {
	return func(m *Module) {
		if renderer != nil {
			m.renderer = renderer
		}
	}
}

// WithClock fixes the clock every temporal query anchors on. Intended for
// tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Module) {
		if clock != nil {
			m.clock = clock
		}
	}
}

// Module is the top level runtime facade.
type Module struct {
	cfg Config

	loggers   logging.LoggerProvider
	loader    source.Loader
	contentFS fs.FS
	renderer  markdown.Renderer
	clock     func() time.Time

	resolver   *permalink.Resolver
	events     events.Service
	sermons    sermons.Service
	speakers   speakers.Service
	series     series.Service
	ministries ministries.Service
	navigation navigation.Service
}

// New validates cfg and wires the services.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg, clock: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	if m.loggers == nil {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
			Focus:     cfg.Logging.Focus,
		})
		if err != nil {
			return nil, err
		}
		m.loggers = provider
	}

	if m.loader == nil {
		fsys := m.contentFS
		if fsys == nil {
			fsys = os.DirFS(cfg.Content.Dir)
		}
		loader, err := source.NewDirLoader(fsys, source.WithLogger(logging.SourceLogger(m.loggers)))
		if err != nil {
			return nil, err
		}
		m.loader = loader
	}

	if m.renderer == nil {
		m.renderer = markdown.NewGoldmarkRenderer()
	}

	m.resolver = permalink.NewResolver(permalink.ResolverConfig{
		BasePath:       cfg.Site.Base,
		TrailingSlash:  cfg.Site.TrailingSlash,
		MinistriesBase: cfg.Ministries.List.Pathname,
		SeriesBase:     cfg.Series.List.Pathname,
		SermonsBase:    cfg.Sermons.List.Pathname,
		SpeakersBase:   cfg.Speakers.List.Pathname,
	})

	m.speakers = speakers.NewService(m.loader, cfg.Speakers,
		speakers.WithLogger(logging.SpeakersLogger(m.loggers)))

	m.series = series.NewService(m.loader, cfg.Series,
		series.WithLogger(logging.SeriesLogger(m.loggers)),
		series.WithClock(m.clock))

	m.sermons = sermons.NewService(m.loader, cfg.Sermons, m.speakers, m.series,
		sermons.WithLogger(logging.SermonsLogger(m.loggers)))

	m.events = events.NewService(m.loader, cfg.Events,
		events.WithLogger(logging.EventsLogger(m.loggers)),
		events.WithClock(m.clock),
		events.WithLocation(cfg.Location()),
		events.WithSiteName(cfg.Site.Name))

	m.ministries = ministries.NewService(m.loader, m.renderer, cfg.Ministries,
		ministries.WithLogger(logging.MinistriesLogger(m.loggers)),
		ministries.WithClock(m.clock))

	m.navigation = navigation.NewService(m.resolver, m.ministries, cfg.Navigation,
		navigation.WithLogger(logging.NavigationLogger(m.loggers)))

	return m, nil
}

// Events returns the configured event service.
func (m *Module) Events() EventService {
	return m.events
}

// Sermons returns the configured sermon service.
func (m *Module) Sermons() SermonService {
	return m.sermons
}

// Speakers returns the configured speaker service.
func (m *Module) Speakers() SpeakerService {
	return m.speakers
}

// Series returns the configured series service.
func (m *Module) Series() SeriesService {
	return m.series
}

// Ministries returns the configured ministry service.
func (m *Module) Ministries() MinistryService {
	return m.ministries
}

// Navigation returns the configured navigation service.
func (m *Module) Navigation() NavigationService {
	return m.navigation
}

// Resolver returns the permalink resolver built from the site config.
func (m *Module) Resolver() *permalink.Resolver {
	return m.resolver
}

// Reset clears every cached collection so the next access reloads from
// source.
func (m *Module) Reset() {
	m.events.Reset()
	m.sermons.Reset()
	m.speakers.Reset()
	m.series.Reset()
	m.ministries.Reset()
}
