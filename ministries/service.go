package ministries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goliatone/go-churchsite/internal/collection"
	"github.com/goliatone/go-churchsite/internal/logging"
	"github.com/goliatone/go-churchsite/internal/markdown"
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/internal/util"
	"github.com/goliatone/go-churchsite/permalink"
)

// DefaultLatestCount is the slice size used when a caller does not specify one.
const DefaultLatestCount = 4

// Service exposes the ministry page collection. Draft pages never leave
// the loader.
type Service interface {
	Fetch(ctx context.Context) ([]Ministry, error)
	FindByIDs(ctx context.Context, ids []string) ([]Ministry, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Ministry, error)
	FindLatest(ctx context.Context, count int) ([]Ministry, error)
	FindByCategory(ctx context.Context, category string) ([]Ministry, error)
	FindByTag(ctx context.Context, tag string) ([]Ministry, error)
	Categories(ctx context.Context) ([]string, error)
	Tags(ctx context.Context) ([]string, error)
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

// WithClock overrides the clock used when a page carries no publish date.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	loader   source.Loader
	renderer markdown.Renderer
	builder  permalink.Builder
	order    string
	log      logging.Logger
	now      func() time.Time
	cache    *collection.Cache[Ministry]
}

// NewService constructs the ministry service over the supplied loader and
// markdown renderer.
func NewService(loader source.Loader, renderer markdown.Renderer, cfg runtimeconfig.MinistriesConfig, opts ...ServiceOption) Service {
	s := &service{
		loader:   loader,
		renderer: renderer,
		builder:  permalink.NewBuilder(cfg.Item.Permalink),
		order:    cfg.Order,
		log:      logging.NoOp(),
		now:      time.Now,
	}
	if s.order == "" {
		s.order = runtimeconfig.MinistriesOrderPublishDate
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = collection.New(s.load)
	return s
}

func (s *service) load(ctx context.Context) ([]Ministry, error) {
	records, err := s.loader.Load(ctx, source.KindMinistries)
	if err != nil {
		return nil, err
	}

	pages := make([]Ministry, 0, len(records))
	drafts := 0
	for _, rec := range records {
		page, draft, err := s.normalize(ctx, rec)
		if err != nil {
			return nil, err
		}
		if draft {
			drafts++
			continue
		}
		pages = append(pages, page)
	}

	switch s.order {
	case runtimeconfig.MinistriesOrderSlug:
		sort.SliceStable(pages, func(i, j int) bool {
			return pages[i].Slug < pages[j].Slug
		})
	default:
		sort.SliceStable(pages, func(i, j int) bool {
			return pages[i].PublishDate.After(pages[j].PublishDate)
		})
	}

	slugs := make([]string, len(pages))
	for i, page := range pages {
		slugs[i] = page.Slug
	}
	for _, dupe := range util.Duplicates(slugs) {
		s.log.Warn("duplicate ministry slug", "slug", dupe)
	}

	s.log.Debug("ministries loaded", "count", len(pages), "drafts", drafts)
	return pages, nil
}

func (s *service) normalize(ctx context.Context, rec source.Record) (Ministry, bool, error) {
	meta, body, err := markdown.ParseFrontMatter(rec.Data)
	if err != nil {
		return Ministry{}, false, fmt.Errorf("ministries: parse %s: %w", rec.Path, err)
	}
	if meta.Draft {
		return Ministry{}, true, nil
	}

	rendered, err := s.renderer.Render(ctx, body)
	if err != nil {
		return Ministry{}, false, fmt.Errorf("ministries: render %s: %w", rec.Path, err)
	}

	page := Ministry{
		ID:   rec.ID,
		Slug: permalink.CleanSlug(rec.ID),

		Title:   meta.Title,
		Excerpt: meta.Excerpt,
		Image:   meta.Image,
		Author:  meta.Author,

		Category: permalink.CleanSlug(meta.Category),
		Tags:     cleanTags(meta.Tags),

		UpdateDate: meta.UpdateDate,

		Content:     string(rendered.HTML),
		ReadingTime: rendered.ReadingTime,

		Metadata: meta.Metadata,
	}
	if meta.PublishDate != nil {
		page.PublishDate = *meta.PublishDate
	} else {
		page.PublishDate = s.now()
	}
	page.Permalink = s.builder.Build(permalink.Values{
		Slug:     page.Slug,
		ID:       page.ID,
		Category: page.Category,
		Date:     page.PublishDate,
	})

	return page, false, nil
}

func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if cleaned := permalink.CleanSlug(tag); cleaned != "" {
			out = append(out, cleaned)
		}
	}
	return out
}

func (s *service) Fetch(ctx context.Context) ([]Ministry, error) {
	return s.cache.Get(ctx)
}

// FindByIDs returns matches in the order ids were supplied, skipping ids
// with no match. A nil slice yields an empty result.
func (s *service) FindByIDs(ctx context.Context, ids []string) ([]Ministry, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Ministry, 0, len(ids))
	for _, id := range ids {
		for _, page := range pages {
			if page.ID == id {
				results = append(results, page)
				break
			}
		}
	}
	return results, nil
}

// FindBySlugs behaves like FindByIDs keyed on slug.
func (s *service) FindBySlugs(ctx context.Context, slugs []string) ([]Ministry, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Ministry, 0, len(slugs))
	for _, slug := range slugs {
		for _, page := range pages {
			if page.Slug == slug {
				results = append(results, page)
				break
			}
		}
	}
	return results, nil
}

func (s *service) FindLatest(ctx context.Context, count int) ([]Ministry, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultLatestCount
	}
	if count > len(pages) {
		count = len(pages)
	}
	return pages[:count], nil
}

// FindByCategory matches against the normalized category slug.
func (s *service) FindByCategory(ctx context.Context, category string) ([]Ministry, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	category = permalink.CleanSlug(category)
	results := make([]Ministry, 0)
	for _, page := range pages {
		if page.Category == category {
			results = append(results, page)
		}
	}
	return results, nil
}

// FindByTag matches against the normalized tag slugs.
func (s *service) FindByTag(ctx context.Context, tag string) ([]Ministry, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	tag = permalink.CleanSlug(tag)
	results := make([]Ministry, 0)
	for _, page := range pages {
		for _, candidate := range page.Tags {
			if candidate == tag {
				results = append(results, page)
				break
			}
		}
	}
	return results, nil
}

// Categories returns the distinct category slugs in use, sorted.
func (s *service) Categories(ctx context.Context) ([]string, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := make([]string, 0)
	for _, page := range pages {
		if page.Category == "" || seen[page.Category] {
			continue
		}
		seen[page.Category] = true
		out = append(out, page.Category)
	}
	sort.Strings(out)
	return out, nil
}

// Tags returns the distinct tag slugs in use, sorted.
func (s *service) Tags(ctx context.Context) ([]string, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	out := make([]string, 0)
	for _, page := range pages {
		for _, tag := range page.Tags {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *service) StaticPaths(ctx context.Context) ([]StaticPath, error) {
	pages, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]StaticPath, 0, len(pages))
	for _, page := range pages {
		paths = append(paths, StaticPath{Permalink: page.Permalink, Ministry: page})
	}
	return paths, nil
}

// Reset clears the cached collection so the next access reloads.
func (s *service) Reset() {
	s.cache.Reset()
}
