package analytics

import (
	"slices"
	"strings"

	"github.com/agentstation/utc"

	"github.com/agentstation/ledgerlink/pkg/profiles"
)

// EventKind names the kind of dated evidence.
type EventKind string

// Timeline event kinds.
const (
	EventSiteFirstPublic EventKind = "site_first_public"
	EventSiteLastPublic  EventKind = "site_last_public"
	EventMoneyPublished  EventKind = "money_published"
	EventMoneyAwarded    EventKind = "money_awarded"
)

// Event is one dated piece of evidence.
type Event struct {
	Date     string    `json:"date" yaml:"date"`
	Kind     EventKind `json:"kind" yaml:"kind"`
	Title    string    `json:"title" yaml:"title"`
	SiteID   string    `json:"siteId,omitempty" yaml:"siteId,omitempty"`
	RecordID string    `json:"recordId,omitempty" yaml:"recordId,omitempty"`

	at utc.Time
}

// EvidenceTimeline lists events newest first with the overall date range.
type EvidenceTimeline struct {
	Events   []Event `json:"events" yaml:"events"`
	Earliest string  `json:"earliest,omitempty" yaml:"earliest,omitempty"`
	Latest   string  `json:"latest,omitempty" yaml:"latest,omitempty"`
}

// parseDate accepts anything utc.Time can unmarshal, down to a bare year,
// plus zone-less ISO timestamps.
func parseDate(s string) (utc.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return utc.Time{}, false
	}
	var t utc.Time
	if err := t.UnmarshalText([]byte(s)); err == nil {
		return t, true
	}
	if t, err := utc.Parse("2006-01-02T15:04:05", s); err == nil {
		return t, true
	}
	return utc.Time{}, false
}

// Timeline collects site and money dates. A site's last public date only
// becomes an event when the site is no longer current and the date differs
// from its first public date. Dates that do not parse are left out.
func Timeline(p *profiles.EntityProfile) EvidenceTimeline {
	var events []Event
	add := func(date string, kind EventKind, title, siteID, recordID string) {
		at, ok := parseDate(date)
		if !ok {
			return
		}
		events = append(events, Event{
			Date:     strings.TrimSpace(date),
			Kind:     kind,
			Title:    title,
			SiteID:   siteID,
			RecordID: recordID,
			at:       at,
		})
	}

	for _, s := range p.Sites() {
		name := s.SiteName
		if name == "" {
			name = s.SiteID
		}
		add(s.FirstPublicDate, EventSiteFirstPublic, name+" first publicly listed", s.SiteID, "")
		if !s.IsCurrent() && s.LastPublicDate != s.FirstPublicDate {
			add(s.LastPublicDate, EventSiteLastPublic, name+" last publicly visible", s.SiteID, "")
		}
	}
	for i := range p.MoneyRecords {
		r := &p.MoneyRecords[i]
		title := r.Title
		if title == "" {
			title = r.RecordID
		}
		add(r.PublishedDate, EventMoneyPublished, title+" published", "", r.RecordID)
		add(r.AwardDate, EventMoneyAwarded, title+" awarded", "", r.RecordID)
	}

	slices.SortStableFunc(events, func(a, b Event) int {
		switch {
		case a.at.After(b.at):
			return -1
		case a.at.Before(b.at):
			return 1
		}
		return strings.Compare(a.Title, b.Title)
	})

	t := EvidenceTimeline{Events: events}
	if t.Events == nil {
		t.Events = []Event{}
	}
	if len(events) > 0 {
		t.Latest = events[0].Date
		t.Earliest = events[len(events)-1].Date
	}
	return t
}
