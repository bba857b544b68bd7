package source_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-churchsite/internal/source"
)

var validEvent = []byte(`{
	"event_name": "Church Picnic",
	"status": "published",
	"all_day_event": false,
	"event_featured": true,
	"event": {"id": "evt-1"},
	"starts_at": "2025-07-04T10:00:00Z",
	"ends_at": "2025-07-04T14:00:00Z",
	"visible_starts_at": "2025-06-01T00:00:00Z",
	"visible_ends_at": "2025-07-04T14:00:00Z",
	"color": "#ff0000"
}`)

func TestDirLoaderReadsKindDirectory(t *testing.T) {
	fsys := fstest.MapFS{
		"events/b-second.json": {Data: validEvent},
		"events/a-first.json":  {Data: validEvent},
		"events/notes.txt":     {Data: []byte("ignored")},
	}

	loader, err := source.NewDirLoader(fsys)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	records, err := loader.Load(context.Background(), source.KindEvents)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records got %d", len(records))
	}
	if records[0].ID != "a-first" || records[1].ID != "b-second" {
		t.Fatalf("expected records sorted by path, got %q %q", records[0].ID, records[1].ID)
	}
}

func TestDirLoaderMissingDirectoryYieldsEmpty(t *testing.T) {
	loader, err := source.NewDirLoader(fstest.MapFS{})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	records, err := loader.Load(context.Background(), source.KindSermons)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result got %d records", len(records))
	}
}

func TestDirLoaderUnknownKind(t *testing.T) {
	loader, err := source.NewDirLoader(fstest.MapFS{})
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	_, err = loader.Load(context.Background(), source.Kind("podcasts"))
	if !errors.Is(err, source.ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind got %v", err)
	}
}

func TestDirLoaderRejectsSchemaViolations(t *testing.T) {
	fsys := fstest.MapFS{
		"events/bad.json": {Data: []byte(`{"event_name": "Missing everything"}`)},
	}

	loader, err := source.NewDirLoader(fsys)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	if _, err := loader.Load(context.Background(), source.KindEvents); err == nil {
		t.Fatal("expected schema violation")
	}
}

func TestDirLoaderValidationCanBeDisabled(t *testing.T) {
	fsys := fstest.MapFS{
		"events/bad.json": {Data: []byte(`{"event_name": "Missing everything"}`)},
	}

	loader, err := source.NewDirLoader(fsys, source.WithoutValidation())
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	records, err := loader.Load(context.Background(), source.KindEvents)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record got %d", len(records))
	}
}

func TestDirLoaderMinistryPatterns(t *testing.T) {
	fsys := fstest.MapFS{
		"ministries/youth.md":       {Data: []byte("# Youth")},
		"ministries/kids.mdx":       {Data: []byte("# Kids")},
		"ministries/choir.markdown": {Data: []byte("# Choir")},
		"ministries/raw.json":       {Data: []byte("{}")},
	}

	loader, err := source.NewDirLoader(fsys)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	records, err := loader.Load(context.Background(), source.KindMinistries)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 markdown records got %d", len(records))
	}
}
