package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter is the metadata block ministry documents may carry. Unknown
// keys are preserved in Extra.
type FrontMatter struct {
	Title       string         `yaml:"title"`
	Excerpt     string         `yaml:"excerpt"`
	Image       string         `yaml:"image"`
	Category    string         `yaml:"category"`
	Tags        []string       `yaml:"tags"`
	Author      string         `yaml:"author"`
	PublishDate *time.Time     `yaml:"publishDate"`
	UpdateDate  *time.Time     `yaml:"updateDate"`
	Draft       bool           `yaml:"draft"`
	Metadata    map[string]any `yaml:"metadata"`
	Extra       map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits a markdown document into its frontmatter and body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Extra == nil {
		meta.Extra = map[string]any{}
	}
	return meta, body, nil
}
