package ministries_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-churchsite/internal/markdown"
	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/ministries"
)

type memoryLoader struct {
	records map[source.Kind][]source.Record
}

func (m *memoryLoader) Load(ctx context.Context, kind source.Kind) ([]source.Record, error) {
	return m.records[kind], nil
}

func ministryRecord(id, title, category, publishDate string, tags []string, draft bool) source.Record {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", title)
	if category != "" {
		fmt.Fprintf(&b, "category: %s\n", category)
	}
	if publishDate != "" {
		fmt.Fprintf(&b, "publishDate: %s\n", publishDate)
	}
	if len(tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range tags {
			fmt.Fprintf(&b, "  - %s\n", tag)
		}
	}
	if draft {
		b.WriteString("draft: true\n")
	}
	b.WriteString("---\n\n# ")
	b.WriteString(title)
	b.WriteString("\n\nJoin us every week.\n")

	return source.Record{ID: id, Path: "ministries/" + id + ".md", Data: []byte(b.String())}
}

func ministriesConfig() runtimeconfig.MinistriesConfig {
	return runtimeconfig.DefaultConfig().Ministries
}

func newService(records []source.Record, cfg runtimeconfig.MinistriesConfig) ministries.Service {
	loader := &memoryLoader{records: map[source.Kind][]source.Record{
		source.KindMinistries: records,
	}}
	return ministries.NewService(loader, markdown.NewGoldmarkRenderer(), cfg)
}

func TestServiceFiltersDrafts(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "Students", "2025-01-15T00:00:00Z", nil, false),
		ministryRecord("unfinished", "Unfinished", "", "", nil, true),
	}, ministriesConfig())

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("expected drafts filtered, got %d pages", len(result))
	}
	if result[0].ID != "youth" {
		t.Fatalf("unexpected page %q", result[0].ID)
	}
}

func TestServiceRendersContentAndReadingTime(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "", "2025-01-15T00:00:00Z", nil, false),
	}, ministriesConfig())

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !strings.Contains(result[0].Content, "<h1") {
		t.Fatalf("expected rendered HTML, got %q", result[0].Content)
	}
	if result[0].ReadingTime != 1 {
		t.Fatalf("expected 1 minute reading time got %d", result[0].ReadingTime)
	}
}

func TestServiceNormalizesCategoryAndTags(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "Student Life", "2025-01-15T00:00:00Z",
			[]string{"Middle School", "High School"}, false),
	}, ministriesConfig())

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result[0].Category != "student-life" {
		t.Fatalf("unexpected category %q", result[0].Category)
	}
	if len(result[0].Tags) != 2 || result[0].Tags[0] != "middle-school" {
		t.Fatalf("unexpected tags %v", result[0].Tags)
	}
}

func TestServiceOrdersByPublishDateByDefault(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("older", "Older", "", "2024-01-01T00:00:00Z", nil, false),
		ministryRecord("newer", "Newer", "", "2025-01-01T00:00:00Z", nil, false),
	}, ministriesConfig())

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result[0].ID != "newer" {
		t.Fatalf("expected newest first, got %q", result[0].ID)
	}
}

func TestServiceOrdersBySlugWhenConfigured(t *testing.T) {
	cfg := ministriesConfig()
	cfg.Order = runtimeconfig.MinistriesOrderSlug

	svc := newService([]source.Record{
		ministryRecord("zebra", "Zebra", "", "2025-01-01T00:00:00Z", nil, false),
		ministryRecord("alpha", "Alpha", "", "2024-01-01T00:00:00Z", nil, false),
	}, cfg)

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result[0].ID != "alpha" || result[1].ID != "zebra" {
		t.Fatalf("expected slug order, got %q %q", result[0].ID, result[1].ID)
	}
}

func TestServiceMissingPublishDateUsesClock(t *testing.T) {
	fixed := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	loader := &memoryLoader{records: map[source.Kind][]source.Record{
		source.KindMinistries: {ministryRecord("fresh", "Fresh", "", "", nil, false)},
	}}

	svc := ministries.NewService(loader, markdown.NewGoldmarkRenderer(), ministriesConfig(),
		ministries.WithClock(func() time.Time { return fixed }))

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !result[0].PublishDate.Equal(fixed) {
		t.Fatalf("expected clock fallback, got %v", result[0].PublishDate)
	}
}

func TestServiceFindByCategoryAcceptsRawInput(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "Student Life", "2025-01-15T00:00:00Z", nil, false),
		ministryRecord("choir", "Choir", "Worship", "2025-02-01T00:00:00Z", nil, false),
	}, ministriesConfig())

	result, err := svc.FindByCategory(context.Background(), "Student Life")
	if err != nil {
		t.Fatalf("find by category: %v", err)
	}
	if len(result) != 1 || result[0].ID != "youth" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestServiceFindByTag(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "", "2025-01-15T00:00:00Z", []string{"students"}, false),
		ministryRecord("choir", "Choir", "", "2025-02-01T00:00:00Z", []string{"music"}, false),
	}, ministriesConfig())

	result, err := svc.FindByTag(context.Background(), "Music")
	if err != nil {
		t.Fatalf("find by tag: %v", err)
	}
	if len(result) != 1 || result[0].ID != "choir" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestServiceCategoryAndTagEnumerations(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "Students", "2025-01-15T00:00:00Z", []string{"teens", "students"}, false),
		ministryRecord("kids", "Kids", "Students", "2025-02-01T00:00:00Z", []string{"children"}, false),
		ministryRecord("choir", "Choir", "Worship", "2025-03-01T00:00:00Z", nil, false),
	}, ministriesConfig())

	categories, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(categories) != 2 || categories[0] != "students" || categories[1] != "worship" {
		t.Fatalf("unexpected categories %v", categories)
	}

	tags, err := svc.Tags(context.Background())
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("expected 3 distinct tags got %v", tags)
	}
}

func TestServiceStaticPaths(t *testing.T) {
	svc := newService([]source.Record{
		ministryRecord("youth", "Youth", "", "2025-01-15T00:00:00Z", nil, false),
	}, ministriesConfig())

	paths, err := svc.StaticPaths(context.Background())
	if err != nil {
		t.Fatalf("static paths: %v", err)
	}
	if len(paths) != 1 || paths[0].Permalink != "ministries/youth" {
		t.Fatalf("unexpected paths %+v", paths)
	}
}
