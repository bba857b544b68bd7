package ministries

import "time"

// Ministry is a rendered ministry page sourced from a markdown file.
type Ministry struct {
	ID        string
	Slug      string
	Permalink string

	Title   string
	Excerpt string
	Image   string

	Category string
	Tags     []string
	Author   string

	PublishDate time.Time
	UpdateDate  *time.Time

	Content     string
	ReadingTime int

	Metadata map[string]any
}

// StaticPath pairs a ministry with the permalink it renders under.
type StaticPath struct {
	Permalink string
	Ministry  Ministry
}
