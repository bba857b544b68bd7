package speakers

// Speaker is the normalized view model for one speaker entry.
type Speaker struct {
	ID        string
	Slug      string
	Permalink string

	DisplayName string
	SortName    string
	Bio         string

	PortraitURL  string
	AlbumArtURL  string
	ThumbnailURL string

	// Image is the preferred display image, falling back through the
	// thumbnail and album art when no portrait exists.
	Image string
}

// StaticPath pairs a speaker's permalink route param with its payload for
// static page generation.
type StaticPath struct {
	Permalink string
	Speaker   Speaker
}

// rawSpeaker mirrors the source record shape. The portait spelling matches
// the upstream feed and is intentional.
type rawSpeaker struct {
	DisplayName  string `json:"displayName"`
	SortName     string `json:"sortName"`
	Bio          string `json:"bio"`
	PortraitURL  string `json:"portaitURL"`
	AlbumArtURL  string `json:"albumArtURL"`
	ThumbnailURL string `json:"roundedThumbnailImageURL"`
}
