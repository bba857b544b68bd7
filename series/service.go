package series

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

// DefaultLatestCount is the slice size used when a caller does not specify one.
const DefaultLatestCount = 4

// Service exposes the sermon series collection.
type Service interface {
	Fetch(ctx context.Context) ([]Series, error)
	FindByIDs(ctx context.Context, ids []string) ([]Series, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Series, error)
	FindLatest(ctx context.Context, count int) ([]Series, error)
	StaticPaths(ctx context.Context) ([]StaticPath, error)
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

// WithClock overrides the clock used to default missing earliest/latest
// dates. Intended for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	loader  source.Loader
	builder permalink.Builder
	log     logging.Logger
	now     func() time.Time
	cache   *collection.Cache[Series]
}

// NewService constructs the series service over the supplied loader.
func NewService(loader source.Loader, cfg runtimeconfig.CollectionConfig, opts ...ServiceOption) Service {
	s := &service{
		loader:  loader,
		builder: permalink.NewBuilder(cfg.Item.Permalink),
		log:     logging.NoOp(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = collection.New(s.load)
	return s
}

func (s *service) load(ctx context.Context) ([]Series, error) {
	records, err := s.loader.Load(ctx, source.KindSeries)
	if err != nil {
		return nil, err
	}

	all := make([]Series, 0, len(records))
	for _, rec := range records {
		entry, err := s.normalize(rec)
		if err != nil {
			return nil, err
		}
		all = append(all, entry)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].LatestDate.After(all[j].LatestDate)
	})

	slugs := make([]string, len(all))
	for i, entry := range all {
		slugs[i] = entry.Slug
	}
	for _, dupe := range util.Duplicates(slugs) {
		s.log.Warn("duplicate series slug", "slug", dupe)
	}

	s.log.Debug("series loaded", "count", len(all))
	return all, nil
}

func (s *service) normalize(rec source.Record) (Series, error) {
	var raw rawSeries
	if err := json.Unmarshal(rec.Data, &raw); err != nil {
		return Series{}, fmt.Errorf("series: decode %s: %w", rec.Path, err)
	}

	earliest := s.now()
	if raw.Earliest != "" {
		earliest = util.ParseTime(raw.Earliest)
	}
	latest := s.now()
	if raw.Latest != "" {
		latest = util.ParseTime(raw.Latest)
	}

	slug := permalink.CleanSlug(rec.ID)
	return Series{
		ID:        rec.ID,
		Slug:      slug,
		Permalink: s.builder.Build(permalink.Values{Slug: slug, ID: rec.ID}),

		Title:         raw.Title,
		BroadcasterID: raw.BroadcasterID,
		Count:         raw.Count,

		EarliestDate: earliest,
		LatestDate:   latest,

		Description: raw.Description,
		Image:       raw.Image,
	}, nil
}

func (s *service) Fetch(ctx context.Context) ([]Series, error) {
	return s.cache.Get(ctx)
}

// FindByIDs returns matches in the order ids were supplied, skipping ids
// with no match. A nil slice yields an empty result.
func (s *service) FindByIDs(ctx context.Context, ids []string) ([]Series, error) {
	all, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Series, 0, len(ids))
	for _, id := range ids {
		for _, entry := range all {
			if entry.ID == id {
				results = append(results, entry)
				break
			}
		}
	}
	return results, nil
}

// FindBySlugs behaves like FindByIDs keyed on slug.
func (s *service) FindBySlugs(ctx context.Context, slugs []string) ([]Series, error) {
	all, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Series, 0, len(slugs))
	for _, slug := range slugs {
		for _, entry := range all {
			if entry.Slug == slug {
				results = append(results, entry)
				break
			}
		}
	}
	return results, nil
}

func (s *service) FindLatest(ctx context.Context, count int) ([]Series, error) {
	all, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultLatestCount
	}
	if count > len(all) {
		count = len(all)
	}
	return all[:count], nil
}

func (s *service) StaticPaths(ctx context.Context) ([]StaticPath, error) {
	all, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]StaticPath, 0, len(all))
	for _, entry := range all {
		paths = append(paths, StaticPath{Permalink: entry.Permalink, Series: entry})
	}
	return paths, nil
}

// Reset clears the cached collection so the next access reloads.
func (s *service) Reset() {
	s.cache.Reset()
}
