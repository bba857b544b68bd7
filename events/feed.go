package events

import (
	"context"
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Feed renders the currently visible events as an iCalendar document.
// All-day events are emitted as DATE values so calendar clients render
// them as banners rather than timed blocks.
func (s *service) Feed(ctx context.Context) (string, error) {
	events, err := s.cache.Get(ctx)
	if err != nil {
		return "", err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	if s.siteName != "" {
		cal.SetName(s.siteName)
		cal.SetProductId(fmt.Sprintf("-//%s//events//EN", s.siteName))
	}

	now := s.now()
	for _, event := range events {
		if !visibleAt(event, now) {
			continue
		}
		entry := cal.AddEvent(event.ID)
		entry.SetSummary(event.Name)
		if event.AllDay {
			entry.SetAllDayStartAt(event.StartsAt)
			entry.SetAllDayEndAt(event.EndsAt)
		} else {
			entry.SetStartAt(event.StartsAt)
			entry.SetEndAt(event.EndsAt)
		}
		if event.EventURL != "" {
			entry.SetURL(event.EventURL)
		}
		if event.Color != "" {
			entry.SetColor(event.Color)
		}
	}

	return cal.Serialize(), nil
}

// visibleAt reports whether the event's display window covers the given
// instant. Zero bounds do not constrain.
func visibleAt(event Event, at time.Time) bool {
	if !event.VisibleStartsAt.IsZero() && at.Before(event.VisibleStartsAt) {
		return false
	}
	if !event.VisibleEndsAt.IsZero() && at.After(event.VisibleEndsAt) {
		return false
	}
	return true
}
