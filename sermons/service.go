package sermons

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-churchsite/internal/collection"
	"github.com/goliatone/go-churchsite/internal/logging"
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/internal/util"
	"github.com/goliatone/go-churchsite/permalink"
	"github.com/goliatone/go-churchsite/series"
	"github.com/goliatone/go-churchsite/speakers"
)

// DefaultLatestCount is the slice size used when a caller does not specify one.
const DefaultLatestCount = 4

// SpeakerLookup resolves speakers by their source ids.
type SpeakerLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]speakers.Speaker, error)
}

// SeriesLookup resolves series by their source ids.
type SeriesLookup interface {
	FindByIDs(ctx context.Context, ids []string) ([]series.Series, error)
}

// Service exposes the sermon collection.
type Service interface {
	Fetch(ctx context.Context) ([]Sermon, error)
	FindByIDs(ctx context.Context, ids []string) ([]Sermon, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]Sermon, error)
	FindLatest(ctx context.Context, count int) ([]Sermon, error)
	FindBySeries(ctx context.Context, seriesID string) ([]Sermon, error)
	FindBySpeakers(ctx context.Context, speakerIDs []string) ([]Sermon, error)
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
	loader   source.Loader
	builder  permalink.Builder
	speakers SpeakerLookup
	series   SeriesLookup
	log      logging.Logger
	cache    *collection.Cache[Sermon]
}

// NewService constructs the sermon service. Speaker and series lookups are
// optional; without them sermons carry only the raw reference ids.
func NewService(loader source.Loader, cfg runtimeconfig.CollectionConfig, speakerLookup SpeakerLookup, seriesLookup SeriesLookup, opts ...ServiceOption) Service {
	s := &service{
		loader:   loader,
		builder:  permalink.NewBuilder(cfg.Item.Permalink),
		speakers: speakerLookup,
		series:   seriesLookup,
		log:      logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = collection.New(s.load)
	return s
}

func (s *service) load(ctx context.Context) ([]Sermon, error) {
	records, err := s.loader.Load(ctx, source.KindSermons)
	if err != nil {
		return nil, err
	}

	sermons := make([]Sermon, 0, len(records))
	for _, rec := range records {
		sermon, err := s.normalize(rec)
		if err != nil {
			return nil, err
		}
		sermons = append(sermons, sermon)
	}

	if err := s.resolveReferences(ctx, sermons); err != nil {
		return nil, err
	}

	sort.SliceStable(sermons, func(i, j int) bool {
		return sermons[i].PreachDate.After(sermons[j].PreachDate)
	})

	slugs := make([]string, len(sermons))
	for i, sermon := range sermons {
		slugs[i] = sermon.Slug
	}
	for _, dupe := range util.Duplicates(slugs) {
		s.log.Warn("duplicate sermon slug", "slug", dupe)
	}

	s.log.Debug("sermons loaded", "count", len(sermons))
	return sermons, nil
}

func (s *service) normalize(rec source.Record) (Sermon, error) {
	var raw rawSermon
	if err := json.Unmarshal(rec.Data, &raw); err != nil {
		return Sermon{}, fmt.Errorf("sermons: decode %s: %w", rec.Path, err)
	}

	sermon := Sermon{
		ID:   rec.ID,
		Slug: permalink.CleanSlug(rec.ID),

		FullTitle:    raw.FullTitle,
		DisplayTitle: util.FirstNonEmpty(raw.DisplayTitle, raw.FullTitle),
		Subtitle:     raw.Subtitle,
		EventType:    raw.EventType,
		BibleText:    raw.BibleText,

		BroadcasterID: raw.Broadcaster.ID,
		SpeakerID:     string(raw.Speaker.ID),

		HasAudio: raw.HasAudio,
		HasVideo: raw.HasVideo,
		HasPDF:   raw.HasPDF,

		PreachDate:  util.ParseTime(raw.PreachDate),
		PublishDate: util.ParseTime(raw.PublishDate),

		AudioDuration: time.Duration(raw.AudioDurationSeconds) * time.Second,
		VideoDuration: time.Duration(raw.VideoDurationSeconds) * time.Second,

		ExternalURL: raw.ExternalLink,
		Keywords:    splitKeywords(raw.Keywords),
	}
	if raw.Series != nil {
		sermon.SeriesID = string(raw.Series.ID)
	}
	if raw.UpdateDate != nil {
		updated := time.UnixMilli(*raw.UpdateDate).UTC()
		sermon.UpdateDate = &updated
	}
	sermon.Permalink = s.builder.Build(permalink.Values{
		Slug: sermon.Slug,
		ID:   sermon.ID,
		Date: sermon.PreachDate,
	})

	// Media lists arrive ordered worst to best. The last adaptive entry
	// wins the stream URL even when it carries none.
	for _, item := range raw.Media.Video {
		if item.AdaptiveBitrate {
			sermon.StreamURL = item.StreamURL
		}
		if item.ThumbnailImageURL != "" {
			sermon.Image = item.ThumbnailImageURL
		}
	}
	for _, item := range raw.Media.Audio {
		if item.StreamURL != "" {
			sermon.AudioURL = item.StreamURL
		}
	}

	return sermon, nil
}

// splitKeywords turns the comma separated keyword field into a clean list.
func splitKeywords(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *service) resolveReferences(ctx context.Context, sermons []Sermon) error {
	if s.speakers != nil {
		for i := range sermons {
			if sermons[i].SpeakerID == "" {
				continue
			}
			matches, err := s.speakers.FindByIDs(ctx, []string{sermons[i].SpeakerID})
			if err != nil {
				return err
			}
			if len(matches) > 0 {
				sermons[i].Speaker = &matches[0]
			}
		}
	}
	if s.series != nil {
		for i := range sermons {
			if sermons[i].SeriesID == "" {
				continue
			}
			matches, err := s.series.FindByIDs(ctx, []string{sermons[i].SeriesID})
			if err != nil {
				return err
			}
			if len(matches) > 0 {
				sermons[i].Series = &matches[0]
			}
		}
	}
	return nil
}

func (s *service) Fetch(ctx context.Context) ([]Sermon, error) {
	return s.cache.Get(ctx)
}

// FindByIDs returns matches in the order ids were supplied, skipping ids
// with no match. A nil slice yields an empty result.
func (s *service) FindByIDs(ctx context.Context, ids []string) ([]Sermon, error) {
	sermons, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Sermon, 0, len(ids))
	for _, id := range ids {
		for _, sermon := range sermons {
			if sermon.ID == id {
				results = append(results, sermon)
				break
			}
		}
	}
	return results, nil
}

// FindBySlugs behaves like FindByIDs keyed on slug.
func (s *service) FindBySlugs(ctx context.Context, slugs []string) ([]Sermon, error) {
	sermons, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Sermon, 0, len(slugs))
	for _, slug := range slugs {
		for _, sermon := range sermons {
			if sermon.Slug == slug {
				results = append(results, sermon)
				break
			}
		}
	}
	return results, nil
}

func (s *service) FindLatest(ctx context.Context, count int) ([]Sermon, error) {
	sermons, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = DefaultLatestCount
	}
	if count > len(sermons) {
		count = len(sermons)
	}
	return sermons[:count], nil
}

// FindBySeries returns every sermon belonging to the series, newest first.
func (s *service) FindBySeries(ctx context.Context, seriesID string) ([]Sermon, error) {
	sermons, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]Sermon, 0)
	for _, sermon := range sermons {
		if sermon.SeriesID == seriesID {
			results = append(results, sermon)
		}
	}
	return results, nil
}

// FindBySpeakers returns every sermon preached by any of the given
// speakers, newest first.
func (s *service) FindBySpeakers(ctx context.Context, speakerIDs []string) ([]Sermon, error) {
	sermons, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(speakerIDs))
	for _, id := range speakerIDs {
		wanted[id] = true
	}

	results := make([]Sermon, 0)
	for _, sermon := range sermons {
		if wanted[sermon.SpeakerID] {
			results = append(results, sermon)
		}
	}
	return results, nil
}

func (s *service) StaticPaths(ctx context.Context) ([]StaticPath, error) {
	sermons, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	paths := make([]StaticPath, 0, len(sermons))
	for _, sermon := range sermons {
		paths = append(paths, StaticPath{Permalink: sermon.Permalink, Sermon: sermon})
	}
	return paths, nil
}

// Reset clears the cached collection so the next access reloads.
func (s *service) Reset() {
	s.cache.Reset()
}
