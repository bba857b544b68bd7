// Package source implements the content-loading boundary. It discovers raw
// records for each entity kind inside a content directory, enforces the
// per-kind JSON Schemas, and hands validated payloads to the normalizers.
// Records that reach a normalizer are well formed; normalizers do not
// re-validate.
package source

import (
	"context"
	"errors"
)

// Kind identifies one content collection.
type Kind string

const (
	KindEvents     Kind = "events"
	KindSermons    Kind = "sermons"
	KindSpeakers   Kind = "speakers"
	KindSeries     Kind = "series"
	KindMinistries Kind = "ministries"
)

// Kinds enumerates every known collection in load order.
func Kinds() []Kind {
	return []Kind{KindEvents, KindSermons, KindSpeakers, KindSeries, KindMinistries}
}

// Record is one raw content entry. ID is derived from the file name stem and
// is unique within a kind. Data carries the raw file contents: JSON for data
// collections, markdown with frontmatter for ministries.
type Record struct {
	ID   string
	Path string
	Data []byte
}

// Loader returns every validated raw record for an entity kind.
type Loader interface {
	Load(ctx context.Context, kind Kind) ([]Record, error)
}

var (
	// ErrUnknownKind indicates a kind no loader knows about.
	ErrUnknownKind = errors.New("source: unknown entity kind")
	// ErrSchemaViolation indicates a record failed its kind schema.
	ErrSchemaViolation = errors.New("source: record failed schema validation")
)
