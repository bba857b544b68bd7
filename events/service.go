package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-churchsite/internal/collection"
	"github.com/goliatone/go-churchsite/internal/logging"
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/internal/util"
	"github.com/goliatone/go-churchsite/permalink"
)

const (
	// DefaultLatestCount is the slice size used when a caller does not specify one.
	DefaultLatestCount = 4
	// DefaultFutureDays is the lookahead window for FindInFutureDays.
	DefaultFutureDays = 90
)

// Service exposes the event collection and its temporal queries.
type Service interface {
	Fetch(ctx context.Context) ([]Event, error)
	FindByIDs(ctx context.Context, ids []string) ([]Event, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Event, error)
	FindLatest(ctx context.Context, count int) ([]Event, error)
	FindFeatured(ctx context.Context, count int, ministry string) ([]Event, error)
	FindInFutureDays(ctx context.Context, days int) ([]Event, error)
	FindUpcomingByMinistryPerDay(ctx context.Context, ministry string, days int) ([]DayEvents, error)
	StaticPaths(ctx context.Context) ([]StaticPath, error)
	Feed(ctx context.Context) (string, error)
	Reset()
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

// WithClock overrides the clock that anchors temporal queries. Intended for
// tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithSiteName sets the calendar name used in the iCal feed.
func WithSiteName(name string) ServiceOption {
	return func(s *service) {
		s.siteName = name
	}
}

// WithLocation fixes the reference time zone for calendar-day boundaries.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

type service struct {
	loader          source.Loader
	builder         permalink.Builder
	defaultMinistry string
	siteName        string
	log             logging.Logger
	now             func() time.Time
	loc             *time.Location
	cache           *collection.Cache[Event]
}

// NewService constructs the event service over the supplied loader.
func NewService(loader source.Loader, cfg runtimeconfig.EventsConfig, opts ...ServiceOption) Service {
	s := &service{
		loader:          loader,
		builder:         permalink.NewBuilder(cfg.Item.Permalink),
		defaultMinistry: cfg.DefaultMinistry,
		log:             logging.NoOp(),
		now:             time.Now,
		loc:             time.UTC,
	}
	if s.defaultMinistry == "" {
		s.defaultMinistry = "default"
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = collection.New(s.load)
	return s
}

func (s *service) load(ctx context.Context) ([]Event, error) {
	records, err := s.loader.Load(ctx, source.KindEvents)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(records))
	for _, rec := range records {
		event, err := s.normalize(rec)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartsAt.After(events[j].StartsAt)
	})

	slugs := make([]string, len(events))
	for i, event := range events {
		slugs[i] = event.Slug
	}
	for _, dupe := range util.Duplicates(slugs) {
		s.log.Warn("duplicate event slug", "slug", dupe)
	}

	s.log.Debug("events loaded", "count", len(events))
	return events, nil
}

func (s *service) normalize(rec source.Record) (Event, error) {
	var raw rawEvent
	if err := json.Unmarshal(rec.Data, &raw); err != nil {
		return Event{}, fmt.Errorf("events: decode %s: %w", rec.Path, err)
	}

	ministry := raw.Ministry
	if ministry == "" {
		ministry = s.defaultMinistry
	}

	event := Event{
		ID:      rec.ID,
		Slug:    permalink.CleanSlug(rec.ID),
		EventID: raw.Event.ID,

		Name:     raw.EventName,
		Status:   raw.Status,
		AllDay:   raw.AllDayEvent,
		Featured: raw.EventFeatured,

		StartsAt:        util.ParseTime(raw.StartsAt),
		EndsAt:          util.ParseTime(raw.EndsAt),
		VisibleStartsAt: util.ParseTime(raw.VisibleStartsAt),
		VisibleEndsAt:   util.ParseTime(raw.VisibleEndsAt),

		Ministry:  ministry,
		Color:     raw.Color,
		Highlight: raw.EventTags.Highlight == highlightTagValue,

		Tags: raw.Tags,
	}
	event.Permalink = s.builder.Build(permalink.Values{
		Slug: event.Slug,
		ID:   event.ID,
		Date: event.StartsAt,
	})

	if raw.Event.ImageURL != nil {
		event.ImageURL = *raw.Event.ImageURL
	}
	if raw.Event.ChurchCenterURL != nil {
		event.EventURL = *raw.Event.ChurchCenterURL
	}

	// The raw registration URL is exposed only while signup is actually
	// possible.
	if reg := raw.Registration; reg != nil && reg.Open && !reg.Closed {
		if raw.Event.RegistrationURL != nil {
			event.RegistrationURL = *raw.Event.RegistrationURL
		}
		if reg.OpenAt != nil {
			opensAt := util.ParseTime(*reg.OpenAt)
			event.RegistrationOpensAt = &opensAt
		}
	}

	return event, nil
}

func (s *service) Fetch(ctx context.Context) ([]Event, error) {
	return s.cache.Get(ctx)
}

// FindByIDs returns matches in the order ids were supplied, skipping ids
// with no match. A nil slice yields an empty result.
func (s *service) FindByIDs(ctx context.Context, ids []string) ([]Event, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Event, 0, len(ids))
	for _, id := range ids {
		for _, event := range events {
			if event.ID == id {
				results = append(results, event)
				break
			}
		}
	}
	return results, nil
}

// FindBySlugs behaves like FindByIDs keyed on slug.
func (s *service) FindBySlugs(ctx context.Context, slugs []string) ([]Event, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Event, 0, len(slugs))
	for _, slug := range slugs {
		for _, event := range events {
			if event.Slug == slug {
				results = append(results, event)
				break
			}
		}
	}
	return results, nil
}

func (s *service) FindLatest(ctx context.Context, count int) ([]Event, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultLatestCount
	}
	if count > len(events) {
		count = len(events)
	}
	return events[:count], nil
}

// FindFeatured returns up to count events that have not ended and carry the
// featured flag or the highlight tag, optionally narrowed to one ministry.
// When more than count qualify, recurring instances collapse to the first
// occurrence per underlying event before the cut; the survivors are ordered
// soonest first.
func (s *service) FindFeatured(ctx context.Context, count int, ministry string) ([]Event, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultLatestCount
	}

	now := s.now()
	qualified := make([]Event, 0, len(events))
	for _, event := range events {
		if !event.EndsAt.After(now) {
			continue
		}
		if !event.Featured && !event.Highlight {
			continue
		}
		if ministry != "" && event.Ministry != ministry {
			continue
		}
		qualified = append(qualified, event)
	}

	if len(qualified) > count {
		seen := make(map[string]bool, len(qualified))
		deduped := make([]Event, 0, len(qualified))
		for _, event := range qualified {
			key := event.EventID
			if key == "" {
				key = event.ID
			}
			if seen[key] {
				continue
			}
			seen[key] = true
			deduped = append(deduped, event)
		}
		qualified = deduped
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].StartsAt.Before(qualified[j].StartsAt)
	})

	if count > len(qualified) {
		count = len(qualified)
	}
	return qualified[:count], nil
}

// FindInFutureDays returns events starting before now plus days.
func (s *service) FindInFutureDays(ctx context.Context, days int) ([]Event, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultFutureDays
	}

	before := s.now().AddDate(0, 0, days)
	results := make([]Event, 0, len(events))
	for _, event := range events {
		if event.StartsAt.Before(before) {
			results = append(results, event)
		}
	}
	return results, nil
}

// FindUpcomingByMinistryPerDay buckets a ministry's events into days
// consecutive calendar days starting today in the configured reference
// zone. An event lands in every day its interval overlaps, so one spanning
// midnight shows up in both adjacent buckets. Empty days keep their bucket.
func (s *service) FindUpcomingByMinistryPerDay(ctx context.Context, ministry string, days int) ([]DayEvents, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 1
	}

	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	buckets := make([]DayEvents, 0, days)
	for i := 0; i < days; i++ {
		dayStart := today.AddDate(0, 0, i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		bucket := DayEvents{Date: dayStart}
		for _, event := range events {
			if event.Ministry != ministry {
				continue
			}
			// Half-open interval overlap over [dayStart, dayEnd).
			if event.StartsAt.Before(dayEnd) && event.EndsAt.After(dayStart) {
				bucket.Events = append(bucket.Events, event)
			}
		}
		sort.SliceStable(bucket.Events, func(a, b int) bool {
			return bucket.Events[a].StartsAt.Before(bucket.Events[b].StartsAt)
		})
		buckets = append(buckets, bucket)
	}

	return buckets, nil
}

func (s *service) StaticPaths(ctx context.Context) ([]StaticPath, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]StaticPath, 0, len(events))
	for _, event := range events {
		paths = append(paths, StaticPath{Permalink: event.Permalink, Event: event})
	}
	return paths, nil
}

// Reset clears the cached collection so the next access reloads.
func (s *service) Reset() {
	s.cache.Reset()
}
