package permalink

import "strings"

// LinkKind identifies the class of target a resolver builds a path for.
type LinkKind string

const (
	KindPage       LinkKind = "page"
	KindHome       LinkKind = "home"
	KindAsset      LinkKind = "asset"
	KindMinistries LinkKind = "ministries"
	KindMinistry   LinkKind = "ministry"
	KindAllSeries  LinkKind = "allseries"
	KindSeries     LinkKind = "series"
	KindSermons    LinkKind = "sermons"
	KindSermon     LinkKind = "sermon"
	KindSpeakers   LinkKind = "speakers"
	KindSpeaker    LinkKind = "speaker"
)

// ResolverConfig captures the per-collection list bases plus the site-wide
// base path and trailing slash policy.
type ResolverConfig struct {
	BasePath       string
	TrailingSlash  bool
	MinistriesBase string
	SeriesBase     string
	SermonsBase    string
	SpeakersBase   string
}

// Resolver turns link kinds and slugs into site-absolute paths. External
// URLs, fragments, and javascript pseudo-links pass through untouched.
type Resolver struct {
	cfg ResolverConfig
}

// NewResolver constructs a Resolver. Collection bases run through CleanSlug
// so configured pathnames behave the same as entity slugs.
func NewResolver(cfg ResolverConfig) *Resolver {
	cfg.MinistriesBase = CleanSlug(cfg.MinistriesBase)
	cfg.SeriesBase = CleanSlug(cfg.SeriesBase)
	cfg.SermonsBase = CleanSlug(cfg.SermonsBase)
	cfg.SpeakersBase = CleanSlug(cfg.SpeakersBase)
	return &Resolver{cfg: cfg}
}

// Resolve builds the site-absolute path for the given kind and slug.
func (r *Resolver) Resolve(kind LinkKind, slug string) string {
	if isExternal(slug) {
		return slug
	}

	var path string
	switch kind {
	case KindHome:
		path = ""
	case KindAsset:
		return "/" + CleanPath(r.cfg.BasePath, slug)
	case KindMinistries:
		path = r.cfg.MinistriesBase
	case KindMinistry:
		path = CleanPath(r.cfg.MinistriesBase, slug)
	case KindAllSeries:
		path = r.cfg.SeriesBase
	case KindSeries:
		path = CleanPath(r.cfg.SeriesBase, slug)
	case KindSermons:
		path = r.cfg.SermonsBase
	case KindSermon:
		path = CleanPath(r.cfg.SermonsBase, slug)
	case KindSpeakers:
		path = r.cfg.SpeakersBase
	case KindSpeaker:
		path = CleanPath(r.cfg.SpeakersBase, slug)
	default:
		path = CleanPath(slug)
	}

	return r.sitePath(path)
}

// Home returns the resolved home path honoring the configured base path.
func (r *Resolver) Home() string {
	return r.Resolve(KindHome, "")
}

func (r *Resolver) sitePath(path string) string {
	joined := CleanPath(r.cfg.BasePath, path)
	out := "/" + joined
	if r.cfg.TrailingSlash && joined != "" {
		out += "/"
	}
	return out
}

func isExternal(target string) bool {
	for _, prefix := range []string{"https://", "http://", "://", "#", "javascript:"} {
		if strings.HasPrefix(target, prefix) {
			return true
		}
	}
	return false
}
