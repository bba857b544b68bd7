package permalink

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

// Values supplies the concrete placeholder values for a pattern build.
// Date feeds the %year%..%second% placeholders; Category is optional and
// substitutes to the empty string when absent.
type Values struct {
	Slug     string
	ID       string
	Category string
	Date     time.Time
}

// Builder renders permalink patterns such as "sermons/%year%/%slug%" into
// canonical slash-normalized paths. It is a pure value type; the zero value
// builds from an empty pattern.
type Builder struct {
	pattern string
}

// NewBuilder constructs a Builder for the supplied pattern. Leading and
// trailing slashes in the pattern are irrelevant; Build collapses them.
func NewBuilder(pattern string) Builder {
	return Builder{pattern: pattern}
}

// Pattern returns the raw pattern the builder was constructed with.
func (b Builder) Pattern() string {
	return b.pattern
}

// Build substitutes every placeholder and normalizes the result. Numeric
// date parts are zero padded (4 digits for the year, 2 otherwise). The same
// inputs always produce the same path.
func (b Builder) Build(v Values) string {
	replacer := strings.NewReplacer(
		"%slug%", v.Slug,
		"%id%", v.ID,
		"%category%", v.Category,
		"%year%", fmt.Sprintf("%04d", v.Date.Year()),
		"%month%", fmt.Sprintf("%02d", int(v.Date.Month())),
		"%day%", fmt.Sprintf("%02d", v.Date.Day()),
		"%hour%", fmt.Sprintf("%02d", v.Date.Hour()),
		"%minute%", fmt.Sprintf("%02d", v.Date.Minute()),
		"%second%", fmt.Sprintf("%02d", v.Date.Second()),
	)
	return CleanPath(strings.Split(replacer.Replace(b.pattern), "/")...)
}

// TrimSlash removes leading and trailing slashes and surrounding whitespace.
func TrimSlash(s string) string {
	return strings.Trim(strings.TrimSpace(s), "/")
}

// CleanPath joins the supplied segments with single slashes, dropping empty
// segments so repeated, leading, and trailing slashes collapse.
func CleanPath(parts ...string) string {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := TrimSlash(part); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	return strings.Join(cleaned, "/")
}

// CleanSlug normalizes each "/" delimited segment of text into a lowercase
// URL-safe token and rejoins them. The operation is idempotent: cleaning an
// already clean slug returns it unchanged. It never fails; segments the
// normalizer rejects fall back to their lowercased trimmed form.
func CleanSlug(text string) string {
	segments := strings.Split(TrimSlash(text), "/")
	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		normalized, err := slug.Normalize(segment)
		if err != nil || normalized == "" {
			normalized = strings.ToLower(strings.TrimSpace(segment))
		}
		cleaned = append(cleaned, normalized)
	}
	return strings.Join(cleaned, "/")
}

// Canonical resolves path against the site origin and applies the trailing
// slash policy. An empty site yields the path unchanged.
func Canonical(site string, path string, trailingSlash bool) string {
	if strings.TrimSpace(site) == "" {
		return path
	}
	base, err := url.Parse(site)
	if err != nil {
		return path
	}
	ref, err := url.Parse(path)
	if err != nil {
		return path
	}
	resolved := base.ResolveReference(ref).String()
	if path == "" {
		return resolved
	}
	if trailingSlash && !strings.HasSuffix(resolved, "/") {
		return resolved + "/"
	}
	if !trailingSlash && strings.HasSuffix(resolved, "/") {
		return strings.TrimSuffix(resolved, "/")
	}
	return resolved
}
