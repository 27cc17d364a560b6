package v1

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/byxorna/stopover/pkg/text"
	"github.com/dustin/go-humanize"
	"github.com/enescakir/emoji"
	"github.com/go-playground/validator"
)

const (
	// DateTimeLayout is the wire format for a stop's scheduled time: a
	// calendar date plus wall clock, no zone.
	DateTimeLayout = "2006-01-02T15:04"

	mapSearchURL = "https://www.google.com/maps/search/?api=1&query="
)

// DateTime is a combined date+time value without an explicit timezone.
// Instants are interpreted in the local zone; persistence round-trips
// through DateTimeLayout.
type DateTime struct {
	time.Time
}

// NewDateTime composes a DateTime from separate date (2006-01-02) and
// clock (15:04) strings.
func NewDateTime(date, clock string) (DateTime, error) {
	t, err := time.ParseInLocation(DateTimeLayout, date+"T"+clock, time.Local)
	if err != nil {
		return DateTime{}, fmt.Errorf("unable to parse date %q time %q: %w", date, clock, err)
	}
	return DateTime{t}, nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.Format(DateTimeLayout))), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("unable to unquote datetime: %w", err)
	}
	t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("unable to parse datetime %q: %w", s, err)
	}
	d.Time = t
	return nil
}

// Stop is one planned visit on the itinerary. Everything besides Status
// is immutable once created; Order is the insertion sequence number and
// is never renumbered, even after deletes.
type Stop struct {
	ID       ID       `json:"id" validate:"required"`
	Title    string   `json:"title" validate:"required"`
	Address  string   `json:"address" validate:"required"`
	DateTime DateTime `json:"dateTime"`
	Notes    string   `json:"notes,omitempty"`
	Cost     float64  `json:"cost"`
	Status   Status   `json:"status" validate:"required"`
	Order    int      `json:"order"`
}

func (s *Stop) Validate() error {
	if s.DateTime.IsZero() {
		return fmt.Errorf("stop %q has no scheduled time", s.Title)
	}
	validate := validator.New()
	return validate.Struct(*s)
}

// MapURL is the external map deep link for this stop. The address is used
// verbatim, URL-encoded. Never fetched by us, only handed to the OS.
func (s *Stop) MapURL() string {
	return mapSearchURL + url.QueryEscape(s.Address)
}

func (s *Stop) Icon() string {
	switch s.Status {
	case StatusVisited:
		return emoji.CheckMarkButton.String()
	case StatusSkipped:
		return emoji.CrossMark.String()
	default:
		return emoji.RoundPushpin.String()
	}
}

// Summary is the secondary context line rendered under a stop's title.
func (s *Stop) Summary() string {
	when := text.RelativeTime(s.DateTime.Time)
	if s.Cost <= 0 {
		return when
	}
	return fmt.Sprintf("%s • %s", when, humanize.Commaf(s.Cost))
}

// FilterValue is the haystack used when fuzzy-filtering the stop list.
func (s *Stop) FilterValue() string {
	return s.Title + " " + s.Address + " " + s.Notes
}
