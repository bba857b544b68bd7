package speakers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goliatone/go-churchsite/internal/collection"
	"github.com/goliatone/go-churchsite/internal/logging"
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/internal/util"
	"github.com/goliatone/go-churchsite/permalink"
)

// DefaultLatestCount is the slice size used when a caller does not specify one.
const DefaultLatestCount = 4

// Service exposes the speaker collection.
type Service interface {
	Fetch(ctx context.Context) ([]Speaker, error)
	FindByIDs(ctx context.Context, ids []string) ([]Speaker, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Speaker, error)
	FindLatest(ctx context.Context, count int) ([]Speaker, error)
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

type service struct {
	loader  source.Loader
	builder permalink.Builder
	log     logging.Logger
	cache   *collection.Cache[Speaker]
}

// NewService constructs the speaker service over the supplied loader. The
// collection loads once on first access and stays cached for the process.
func NewService(loader source.Loader, cfg runtimeconfig.CollectionConfig, opts ...ServiceOption) Service {
	s := &service{
		loader:  loader,
		builder: permalink.NewBuilder(cfg.Item.Permalink),
		log:     logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = collection.New(s.load)
	return s
}

func (s *service) load(ctx context.Context) ([]Speaker, error) {
	records, err := s.loader.Load(ctx, source.KindSpeakers)
	if err != nil {
		return nil, err
	}

	speakers := make([]Speaker, 0, len(records))
	for _, rec := range records {
		speaker, err := s.normalize(rec)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, speaker)
	}

	sort.SliceStable(speakers, func(i, j int) bool {
		return speakers[i].DisplayName < speakers[j].DisplayName
	})

	slugs := make([]string, len(speakers))
	for i, speaker := range speakers {
		slugs[i] = speaker.Slug
	}
	for _, dupe := range util.Duplicates(slugs) {
		s.log.Warn("duplicate speaker slug", "slug", dupe)
	}

	s.log.Debug("speakers loaded", "count", len(speakers))
	return speakers, nil
}

func (s *service) normalize(rec source.Record) (Speaker, error) {
	var raw rawSpeaker
	if err := json.Unmarshal(rec.Data, &raw); err != nil {
		return Speaker{}, fmt.Errorf("speakers: decode %s: %w", rec.Path, err)
	}

	slug := permalink.CleanSlug(rec.ID)
	return Speaker{
		ID:        rec.ID,
		Slug:      slug,
		Permalink: s.builder.Build(permalink.Values{Slug: slug, ID: rec.ID}),

		DisplayName: raw.DisplayName,
		SortName:    raw.SortName,
		Bio:         raw.Bio,

		PortraitURL:  raw.PortraitURL,
		AlbumArtURL:  raw.AlbumArtURL,
		ThumbnailURL: raw.ThumbnailURL,

		Image: util.FirstNonEmpty(raw.PortraitURL, raw.ThumbnailURL, raw.AlbumArtURL),
	}, nil
}

func (s *service) Fetch(ctx context.Context) ([]Speaker, error) {
	return s.cache.Get(ctx)
}

// FindByIDs returns matches in the order ids were supplied, skipping ids
// with no match. A nil slice yields an empty result.
func (s *service) FindByIDs(ctx context.Context, ids []string) ([]Speaker, error) {
	speakers, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Speaker, 0, len(ids))
	for _, id := range ids {
		for _, speaker := range speakers {
			if speaker.ID == id {
				results = append(results, speaker)
				break
			}
		}
	}
	return results, nil
}

// FindBySlugs behaves like FindByIDs keyed on slug.
func (s *service) FindBySlugs(ctx context.Context, slugs []string) ([]Speaker, error) {
	speakers, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Speaker, 0, len(slugs))
	for _, slug := range slugs {
		for _, speaker := range speakers {
			if speaker.Slug == slug {
				results = append(results, speaker)
				break
			}
		}
	}
	return results, nil
}

func (s *service) FindLatest(ctx context.Context, count int) ([]Speaker, error) {
	speakers, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultLatestCount
	}
	if count > len(speakers) {
		count = len(speakers)
	}
	return speakers[:count], nil
}

func (s *service) StaticPaths(ctx context.Context) ([]StaticPath, error) {
	speakers, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]StaticPath, 0, len(speakers))
	for _, speaker := range speakers {
		paths = append(paths, StaticPath{Permalink: speaker.Permalink, Speaker: speaker})
	}
	return paths, nil
}

// Reset clears the cached collection so the next access reloads.
func (s *service) Reset() {
	s.cache.Reset()
}
