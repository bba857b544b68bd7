package churchsite_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	churchsite "github.com/goliatone/go-churchsite"
)

var contentFS = fstest.MapFS{
	"events/picnic.json": {Data: []byte(`{
		"event_name": "Church Picnic",
		"status": "published",
		"all_day_event": false,
		"event_featured": true,
		"event": {"id": "evt-1", "church_center_url": "https://churchcenter.example.org/picnic"},
		"starts_at": "2025-07-04T10:00:00Z",
		"ends_at": "2025-07-04T14:00:00Z",
		"visible_starts_at": "2025-06-01T00:00:00Z",
		"visible_ends_at": "2025-07-04T14:00:00Z",
		"ministry": "all-church",
		"color": "#336699"
	}`)},
	"speakers/jane-doe.json": {Data: []byte(`{
		"displayName": "Jane Doe",
		"sortName": "Doe, Jane",
		"bio": "Teaching pastor."
	}`)},
	"series/acts.json": {Data: []byte(`{
		"title": "Acts",
		"broadcasterID": "kcc",
		"count": 12,
		"earliest": "2024-01-07",
		"latest": "2024-03-24"
	}`)},
	"sermons/grace.json": {Data: []byte(`{
		"fullTitle": "Grace Abounding",
		"displayTitle": "Grace Abounding",
		"eventType": "Sunday Service",
		"broadcaster": {"id": "kcc"},
		"speaker": {"id": "jane-doe", "displayName": "Jane Doe"},
		"series": {"id": "acts", "title": "Acts"},
		"hasAudio": true,
		"hasVideo": true,
		"hasPDF": false,
		"preachDate": "2024-02-11",
		"publishDate": "2024-02-12",
		"media": {
			"audio": [],
			"video": [{"adaptiveBitrate": true, "streamURL": "https://cdn/grace.m3u8"}]
		}
	}`)},
	"ministries/youth.md": {Data: []byte(`---
title: Youth
category: Students
publishDate: 2025-01-15T00:00:00Z
---

# Youth

Weekly gatherings for students.
`)},
}

func newModule(t *testing.T) *churchsite.Module {
	t.Helper()

	cfg := churchsite.DefaultConfig()
	module, err := churchsite.New(cfg,
		churchsite.WithContentFS(contentFS),
		churchsite.WithClock(func() time.Time {
			return time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
		}))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	return module
}

func TestModuleWiresCollections(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	events, err := module.Events().Fetch(ctx)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Name != "Church Picnic" {
		t.Fatalf("unexpected events %+v", events)
	}
	if events[0].Permalink != "events/picnic" {
		t.Fatalf("unexpected permalink %q", events[0].Permalink)
	}

	sermons, err := module.Sermons().Fetch(ctx)
	if err != nil {
		t.Fatalf("sermons: %v", err)
	}
	if len(sermons) != 1 {
		t.Fatalf("expected 1 sermon got %d", len(sermons))
	}
	if sermons[0].Speaker == nil || sermons[0].Speaker.DisplayName != "Jane Doe" {
		t.Fatalf("expected sermon speaker resolved through the speaker service, got %+v", sermons[0].Speaker)
	}
	if sermons[0].Series == nil || sermons[0].Series.Title != "Acts" {
		t.Fatalf("expected sermon series resolved, got %+v", sermons[0].Series)
	}

	pages, err := module.Ministries().Fetch(ctx)
	if err != nil {
		t.Fatalf("ministries: %v", err)
	}
	if len(pages) != 1 || pages[0].Category != "students" {
		t.Fatalf("unexpected ministries %+v", pages)
	}
}

func TestModuleNavigation(t *testing.T) {
	module := newModule(t)

	header, err := module.Navigation().Header(context.Background())
	if err != nil {
		t.Fatalf("header: %v", err)
	}
	var found bool
	for _, link := range header.Links {
		if link.Text == "Ministries" {
			found = true
			if len(link.Children) != 1 || link.Children[0].Href != "/ministries/youth" {
				t.Fatalf("unexpected ministry children %+v", link.Children)
			}
		}
	}
	if !found {
		t.Fatal("expected ministries in header")
	}
}

func TestModuleFeed(t *testing.T) {
	module := newModule(t)

	feed, err := module.Events().Feed(context.Background())
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if !strings.Contains(feed, "SUMMARY:Church Picnic") {
		t.Fatalf("expected event in feed: %s", feed)
	}
}

func TestModuleResetReloads(t *testing.T) {
	module := newModule(t)
	ctx := context.Background()

	if _, err := module.Events().Fetch(ctx); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	module.Reset()
	if _, err := module.Events().Fetch(ctx); err != nil {
		t.Fatalf("fetch after reset: %v", err)
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	cfg := churchsite.DefaultConfig()
	cfg.Site.TimeZone = "Bad/Zone"

	if _, err := churchsite.New(cfg); !errors.Is(err, churchsite.ErrTimeZoneInvalid) {
		t.Fatalf("expected ErrTimeZoneInvalid got %v", err)
	}
}
