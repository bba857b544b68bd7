package navigation

import (
	"context"
	"fmt"
	"sync"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/goliatone/go-churchsite/internal/logging"
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/ministries"
	"github.com/goliatone/go-churchsite/permalink"
)

// MinistryLister supplies the ministry pages shown under the ministries
// dropdown.
type MinistryLister interface {
	Fetch(ctx context.Context) ([]ministries.Ministry, error)
}

// Service assembles the site-wide header and footer navigation.
type Service interface {
	Header(ctx context.Context) (Header, error)
	Footer(ctx context.Context) (Footer, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger attaches a logger to the service.
func WithLogger(log logging.Logger) ServiceOption {
	return func(s *service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithSocialLinks overrides the footer social links.
func WithSocialLinks(links []SocialLink) ServiceOption {
	return func(s *service) {
		s.social = links
	}
}

// WithFootNote sets the footer note.
func WithFootNote(note string) ServiceOption {
	return func(s *service) {
		s.footNote = note
	}
}

type service struct {
	resolver   *permalink.Resolver
	ministries MinistryLister

	manager      *urlkit.RouteManager
	defaultGroup string
	groupOnce    sync.Once
	group        *urlkit.Group
	groupErr     error

	social   []SocialLink
	footNote string
	log      logging.Logger
}

// NewService constructs the navigation service. When cfg carries a route
// manager config, named page routes resolve through go-urlkit; collection
// links always resolve through the permalink resolver.
func NewService(resolver *permalink.Resolver, lister MinistryLister, cfg runtimeconfig.NavigationConfig, opts ...ServiceOption) Service {
	s := &service{
		resolver:     resolver,
		ministries:   lister,
		defaultGroup: cfg.DefaultGroup,
		log:          logging.NoOp(),
	}
	if cfg.RouteConfig != nil {
		s.manager = urlkit.NewRouteManager(cfg.RouteConfig)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Header builds the top navigation. Ministry pages become dropdown
// children, newest first, matching the order the collection serves them.
func (s *service) Header(ctx context.Context) (Header, error) {
	if err := ctx.Err(); err != nil {
		return Header{}, err
	}

	links := []Link{
		{Text: "Home", Href: s.resolver.Home()},
		{Text: "Events", Href: s.resolver.Resolve(permalink.KindPage, "events")},
		{
			Text: "Sermons",
			Children: []Link{
				{Text: "All Sermons", Href: s.resolver.Resolve(permalink.KindSermons, "")},
				{Text: "Series", Href: s.resolver.Resolve(permalink.KindAllSeries, "")},
				{Text: "Speakers", Href: s.resolver.Resolve(permalink.KindSpeakers, "")},
			},
		},
	}

	ministryLinks, err := s.ministryLinks(ctx)
	if err != nil {
		return Header{}, err
	}
	if len(ministryLinks) > 0 {
		links = append(links, Link{
			Text:     "Ministries",
			Href:     s.resolver.Resolve(permalink.KindMinistries, ""),
			Children: ministryLinks,
		})
	}

	header := Header{Links: links}
	if href := s.routeHref("give", nil); href != "" {
		header.Actions = append(header.Actions, Action{Text: "Give", Href: href, Target: "_blank"})
	}
	return header, nil
}

// Footer builds the bottom navigation from the same sources as the header.
func (s *service) Footer(ctx context.Context) (Footer, error) {
	if err := ctx.Err(); err != nil {
		return Footer{}, err
	}

	ministryLinks, err := s.ministryLinks(ctx)
	if err != nil {
		return Footer{}, err
	}

	sections := []Section{
		{
			Title: "Connect",
			Links: []Link{
				{Text: "Events", Href: s.resolver.Resolve(permalink.KindPage, "events")},
				{Text: "Sermons", Href: s.resolver.Resolve(permalink.KindSermons, "")},
				{Text: "Series", Href: s.resolver.Resolve(permalink.KindAllSeries, "")},
				{Text: "Speakers", Href: s.resolver.Resolve(permalink.KindSpeakers, "")},
			},
		},
	}
	if len(ministryLinks) > 0 {
		sections = append(sections, Section{Title: "Ministries", Links: ministryLinks})
	}

	return Footer{
		Sections: sections,
		SecondaryLinks: []Link{
			{Text: "Home", Href: s.resolver.Home()},
		},
		SocialLinks: s.social,
		FootNote:    s.footNote,
	}, nil
}

func (s *service) ministryLinks(ctx context.Context) ([]Link, error) {
	if s.ministries == nil {
		return nil, nil
	}
	pages, err := s.ministries.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	links := make([]Link, 0, len(pages))
	for _, page := range pages {
		links = append(links, Link{
			Text: page.Title,
			Href: s.resolver.Resolve(permalink.KindMinistry, page.Slug),
		})
	}
	return links, nil
}

// routeHref resolves a named route through go-urlkit. Missing groups or
// routes are logged and collapse to an empty href rather than failing the
// whole menu.
func (s *service) routeHref(route string, params map[string]any) string {
	if s.manager == nil {
		return ""
	}

	s.groupOnce.Do(func() {
		s.group, s.groupErr = lookupGroup(s.manager, s.defaultGroup)
	})
	if s.groupErr != nil || s.group == nil {
		s.log.Warn("navigation route group unavailable", "group", s.defaultGroup, "error", s.groupErr)
		return ""
	}

	builder, err := safeBuilder(s.group, route)
	if err != nil {
		s.log.Warn("navigation route unavailable", "route", route, "error", err)
		return ""
	}
	for key, val := range params {
		builder.WithParam(key, val)
	}

	href, err := builder.Build()
	if err != nil {
		s.log.Warn("navigation route build failed", "route", route, "error", err)
		return ""
	}
	return href
}

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("navigation: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("navigation: urlkit group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("navigation: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
