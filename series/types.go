package series

import "time"

// Series is the normalized view model for one sermon series.
type Series struct {
	ID        string
	Slug      string
	Permalink string

	Title         string
	BroadcasterID string
	Count         int

	EarliestDate time.Time
	LatestDate   time.Time

	Description string
	Image       string
}

// StaticPath pairs a series' permalink route param with its payload.
type StaticPath struct {
	Permalink string
	Series    Series
}

type rawSeries struct {
	Title         string `json:"title"`
	BroadcasterID string `json:"broadcasterID"`
	Count         int    `json:"count"`
	Earliest      string `json:"earliest"`
	Latest        string `json:"latest"`
	Description   string `json:"description"`
	Image         string `json:"image"`
}
