package source

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-churchsite/internal/logging"
)

// DirLoader reads records from a content directory laid out as one
// sub-directory per kind: events/*.json, sermons/*.json, speakers/*.json,
// series/*.json, ministries/*.{md,mdx,markdown}. Records are returned in
// file-name order so loads are deterministic.
type DirLoader struct {
	fsys     fs.FS
	schemas  map[Kind]*jsonschema.Schema
	log      logging.Logger
	validate bool
}

// DirLoaderOption configures a DirLoader at construction time.
type DirLoaderOption func(*DirLoader)

// WithLogger attaches a logger to the loader.
func WithLogger(log logging.Logger) DirLoaderOption {
	return func(l *DirLoader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithoutValidation disables schema checks. Intended for tests that feed
// hand-built fixtures.
func WithoutValidation() DirLoaderOption {
	return func(l *DirLoader) {
		l.validate = false
	}
}

// NewDirLoader constructs a DirLoader over the supplied filesystem.
func NewDirLoader(fsys fs.FS, opts ...DirLoaderOption) (*DirLoader, error) {
	loader := &DirLoader{
		fsys:     fsys,
		log:      logging.NoOp(),
		validate: true,
	}
	for _, opt := range opts {
		opt(loader)
	}

	if loader.validate {
		schemas, err := compileSchemas()
		if err != nil {
			return nil, err
		}
		loader.schemas = schemas
	}
	return loader, nil
}

// Load satisfies Loader. A missing kind directory yields an empty list, not
// an error, so optional collections degrade to no content.
func (l *DirLoader) Load(ctx context.Context, kind Kind) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	patterns, ok := kindPatterns[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	dir := string(kind)
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		l.log.Warn("content directory missing", "kind", kind, "dir", dir)
		return []Record{}, nil
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !matchAny(patterns, name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		filePath := path.Join(dir, name)
		data, err := fs.ReadFile(l.fsys, filePath)
		if err != nil {
			return nil, fmt.Errorf("source: read %s: %w", filePath, err)
		}

		rec := Record{
			ID:   stem(name),
			Path: filePath,
			Data: data,
		}

		if l.validate && kind != KindMinistries {
			if err := validateRecord(l.schemas[kind], rec); err != nil {
				return nil, err
			}
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Path < records[j].Path
	})

	l.log.Debug("content loaded", "kind", kind, "records", len(records))
	return records, nil
}

var kindPatterns = map[Kind][]string{
	KindEvents:     {"*.json"},
	KindSermons:    {"*.json"},
	KindSpeakers:   {"*.json"},
	KindSeries:     {"*.json"},
	KindMinistries: {"*.md", "*.mdx", "*.markdown"},
}

func matchAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		if ok, err := path.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func stem(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
