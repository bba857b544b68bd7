package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	churchsite "github.com/goliatone/go-churchsite"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// manifest is what the site build consumes: every permalink the content
// layer wants rendered, grouped by collection.
type manifest struct {
	BuildID     string    `json:"build_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Events     []pathEntry `json:"events"`
	Sermons    []pathEntry `json:"sermons"`
	Speakers   []pathEntry `json:"speakers"`
	Series     []pathEntry `json:"series"`
	Ministries []pathEntry `json:"ministries"`
	Categories []string    `json:"categories"`
	Tags       []string    `json:"tags"`
}

type pathEntry struct {
	Permalink string `json:"permalink"`
	Payload   any    `json:"payload"`
}

func main() {
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to a TOML config file")
	contentDir := flag.String("content", os.Getenv("CONTENT_DIR"), "content directory override")
	outDir := flag.String("out", "dist", "output directory for the manifest and feed")
	flag.Parse()

	if err := run(context.Background(), *configPath, *contentDir, *outDir); err != nil {
		log.Fatalf("churchsite: %v", err)
	}
}

func run(ctx context.Context, configPath, contentDir, outDir string) error {
	cfg := churchsite.DefaultConfig()
	if configPath != "" {
		loaded, err := churchsite.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if contentDir != "" {
		cfg.Content.Dir = contentDir
	}

	module, err := churchsite.New(cfg)
	if err != nil {
		return err
	}

	out, err := buildManifest(ctx, module)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	manifestPath := filepath.Join(outDir, "paths.json")
	if err := os.WriteFile(manifestPath, payload, 0o644); err != nil {
		return err
	}

	feed, err := module.Events().Feed(ctx)
	if err != nil {
		return err
	}
	feedPath := filepath.Join(outDir, "events.ics")
	if err := os.WriteFile(feedPath, []byte(feed), 0o644); err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d events, %d sermons, %d speakers, %d series, %d ministries)\n",
		manifestPath, len(out.Events), len(out.Sermons), len(out.Speakers), len(out.Series), len(out.Ministries))
	fmt.Printf("wrote %s\n", feedPath)
	return nil
}

func buildManifest(ctx context.Context, module *churchsite.Module) (*manifest, error) {
	out := &manifest{
		BuildID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
	}

	eventPaths, err := module.Events().StaticPaths(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range eventPaths {
		out.Events = append(out.Events, pathEntry{Permalink: p.Permalink, Payload: p.Event})
	}

	sermonPaths, err := module.Sermons().StaticPaths(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range sermonPaths {
		out.Sermons = append(out.Sermons, pathEntry{Permalink: p.Permalink, Payload: p.Sermon})
	}

	speakerPaths, err := module.Speakers().StaticPaths(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range speakerPaths {
		out.Speakers = append(out.Speakers, pathEntry{Permalink: p.Permalink, Payload: p.Speaker})
	}

	seriesPaths, err := module.Series().StaticPaths(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range seriesPaths {
		out.Series = append(out.Series, pathEntry{Permalink: p.Permalink, Payload: p.Series})
	}

	ministryPaths, err := module.Ministries().StaticPaths(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range ministryPaths {
		out.Ministries = append(out.Ministries, pathEntry{Permalink: p.Permalink, Payload: p.Ministry})
	}

	if out.Categories, err = module.Ministries().Categories(ctx); err != nil {
		return nil, err
	}
	if out.Tags, err = module.Ministries().Tags(ctx); err != nil {
		return nil, err
	}

	return out, nil
}
