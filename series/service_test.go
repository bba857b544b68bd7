package series_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/goliatone/go-churchsite/internal/runtimeconfig"
	"github.com/goliatone/go-churchsite/internal/source"
	"github.com/goliatone/go-churchsite/series"
)

type memoryLoader struct {
	records map[source.Kind][]source.Record
}

func (m *memoryLoader) Load(ctx context.Context, kind source.Kind) ([]source.Record, error) {
	return m.records[kind], nil
}

func seriesRecord(id, title, earliest, latest string) source.Record {
	return source.Record{
		ID:   id,
		Path: "series/" + id + ".json",
		Data: []byte(fmt.Sprintf(
			`{"title": %q, "broadcasterID": "kcc", "count": 5, "earliest": %q, "latest": %q}`,
			title, earliest, latest)),
	}
}

func seriesConfig() runtimeconfig.CollectionConfig {
	return runtimeconfig.DefaultConfig().Series
}

func TestServiceSortsByLatestDateDescending(t *testing.T) {
	loader := &memoryLoader{records: map[source.Kind][]source.Record{
		source.KindSeries: {
			seriesRecord("acts", "Acts", "2024-01-07", "2024-03-24"),
			seriesRecord("romans", "Romans", "2024-04-07", "2024-09-29"),
			seriesRecord("psalms", "Psalms", "2023-06-04", "2023-08-27"),
		},
	}}

	svc := series.NewService(loader, seriesConfig())

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 series got %d", len(result))
	}
	if result[0].ID != "romans" || result[1].ID != "acts" || result[2].ID != "psalms" {
		t.Fatalf("expected newest first, got %q %q %q", result[0].ID, result[1].ID, result[2].ID)
	}
}

func TestServiceDefaultsMissingDatesToClock(t *testing.T) {
	fixed := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	loader := &memoryLoader{records: map[source.Kind][]source.Record{
		source.KindSeries: {
			{
				ID:   "new-series",
				Path: "series/new-series.json",
				Data: []byte(`{"title": "New Series", "broadcasterID": "kcc", "count": 0}`),
			},
		},
	}}

	svc := series.NewService(loader, seriesConfig(), series.WithClock(func() time.Time {
		return fixed
	}))

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if !result[0].EarliestDate.Equal(fixed) {
		t.Fatalf("expected earliest defaulted to clock, got %v", result[0].EarliestDate)
	}
	if !result[0].LatestDate.Equal(fixed) {
		t.Fatalf("expected latest defaulted to clock, got %v", result[0].LatestDate)
	}
}

func TestServiceFindBySlugsPreservesArgumentOrder(t *testing.T) {
	loader := &memoryLoader{records: map[source.Kind][]source.Record{
		source.KindSeries: {
			seriesRecord("Acts of the Apostles", "Acts", "2024-01-07", "2024-03-24"),
			seriesRecord("romans", "Romans", "2024-04-07", "2024-09-29"),
		},
	}}

	svc := series.NewService(loader, seriesConfig())

	result, err := svc.FindBySlugs(context.Background(),
		[]string{"romans", "acts-of-the-apostles"})
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 matches got %d", len(result))
	}
	if result[0].ID != "romans" || result[1].ID != "Acts of the Apostles" {
		t.Fatalf("expected argument order preserved, got %q %q", result[0].ID, result[1].ID)
	}
}

func TestServicePermalinkFromPattern(t *testing.T) {
	loader := &memoryLoader{records: map[source.Kind][]source.Record{
		source.KindSeries: {seriesRecord("acts", "Acts", "2024-01-07", "2024-03-24")},
	}}

	svc := series.NewService(loader, seriesConfig())

	result, err := svc.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if result[0].Permalink != "series/acts" {
		t.Fatalf("unexpected permalink %q", result[0].Permalink)
	}
}
