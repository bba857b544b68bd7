package sermons

import (
	"encoding/json"
	"time"

	"github.com/goliatone/go-churchsite/series"
	"github.com/goliatone/go-churchsite/speakers"
)

// Sermon is the normalized view of one recorded message, with its speaker
// and series resolved against their collections when a match exists.
type Sermon struct {
	ID        string
	Slug      string
	Permalink string

	FullTitle    string
	DisplayTitle string
	Subtitle     string
	EventType    string
	BibleText    string

	BroadcasterID string
	SpeakerID     string
	SeriesID      string
	Speaker       *speakers.Speaker
	Series        *series.Series

	HasAudio bool
	HasVideo bool
	HasPDF   bool

	PreachDate  time.Time
	PublishDate time.Time
	UpdateDate  *time.Time

	AudioDuration time.Duration
	VideoDuration time.Duration

	StreamURL   string
	AudioURL    string
	Image       string
	ExternalURL string

	Keywords []string
}

// StaticPath pairs a sermon with the permalink it renders under.
type StaticPath struct {
	Permalink string
	Sermon    Sermon
}

type rawSermon struct {
	FullTitle    string `json:"fullTitle"`
	DisplayTitle string `json:"displayTitle"`
	Subtitle     string `json:"subtitle"`
	EventType    string `json:"eventType"`
	BibleText    string `json:"bibleText"`

	Broadcaster struct {
		ID string `json:"id"`
	} `json:"broadcaster"`
	Speaker struct {
		ID          flexID `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"speaker"`
	Series *struct {
		ID    flexID `json:"id"`
		Title string `json:"title"`
	} `json:"series"`

	HasAudio bool `json:"hasAudio"`
	HasVideo bool `json:"hasVideo"`
	HasPDF   bool `json:"hasPDF"`

	PreachDate  string `json:"preachDate"`
	PublishDate string `json:"publishDate"`
	UpdateDate  *int64 `json:"updateDate"`

	AudioDurationSeconds int `json:"audioDurationSeconds"`
	VideoDurationSeconds int `json:"videoDurationSeconds"`

	ExternalLink string `json:"externalLink"`
	Keywords     string `json:"keywords"`

	Media rawMedia `json:"media"`
}

// flexID accepts the numeric and string id encodings the feed mixes and
// keeps the string form either way.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type rawMedia struct {
	Audio []rawMediaItem `json:"audio"`
	Video []rawMediaItem `json:"video"`
}

type rawMediaItem struct {
	AdaptiveBitrate   bool   `json:"adaptiveBitrate"`
	StreamURL         string `json:"streamURL"`
	DownloadURL       string `json:"downloadURL"`
	ThumbnailImageURL string `json:"thumbnailImageURL"`
}
