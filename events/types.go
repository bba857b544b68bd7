package events

import "time"

// highlightTagValue is the tag value that marks an event for elevated
// display priority.
const highlightTagValue = "Upcoming Event"

// Tag is one categorical tag attached to an event.
type Tag struct {
	ID    string `json:"id"`
	Color string `json:"color"`
	Name  string `json:"name"`
	Group string `json:"group"`
}

// Event is the normalized view model for one calendar event instance.
type Event struct {
	ID        string
	Slug      string
	Permalink string

	// EventID identifies the underlying event; recurring instances share it.
	EventID string

	Name     string
	Status   string
	AllDay   bool
	Featured bool

	ImageURL string
	EventURL string

	// RegistrationURL is set only while registration is open and not closed.
	RegistrationURL     string
	RegistrationOpensAt *time.Time

	StartsAt time.Time
	EndsAt   time.Time

	// VisibleStartsAt/VisibleEndsAt bound the display window independently
	// of the occurrence window.
	VisibleStartsAt time.Time
	VisibleEndsAt   time.Time

	Ministry  string
	Color     string
	Highlight bool

	Tags []Tag
}

// DayEvents is one calendar-day bucket of events, in day order.
type DayEvents struct {
	Date   time.Time
	Events []Event
}

// StaticPath pairs an event's permalink route param with its payload.
type StaticPath struct {
	Permalink string
	Event     Event
}

type rawEvent struct {
	EventName     string `json:"event_name"`
	Status        string `json:"status"`
	AllDayEvent   bool   `json:"all_day_event"`
	EventFeatured bool   `json:"event_featured"`

	Event struct {
		ID              string  `json:"id"`
		ImageURL        *string `json:"image_url"`
		RegistrationURL *string `json:"registration_url"`
		ChurchCenterURL *string `json:"church_center_url"`
	} `json:"event"`

	StartsAt        string `json:"starts_at"`
	EndsAt          string `json:"ends_at"`
	VisibleStartsAt string `json:"visible_starts_at"`
	VisibleEndsAt   string `json:"visible_ends_at"`

	Ministry string `json:"ministry"`
	Color    string `json:"color"`

	Registration *rawRegistration `json:"registration"`

	Tags []Tag `json:"tags"`

	EventTags struct {
		Highlight string `json:"Highlight"`
	} `json:"event_tags"`
}

type rawRegistration struct {
	ID                string  `json:"id"`
	AtMaximumCapacity bool    `json:"at_maximum_capacity"`
	Visibility        string  `json:"visibility"`
	Closed            bool    `json:"closed"`
	Open              bool    `json:"open"`
	OpenAt            *string `json:"open_at"`
	HideAt            *string `json:"hide_at"`
	ShowAt            *string `json:"show_at"`
}
