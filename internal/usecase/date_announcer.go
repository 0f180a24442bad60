package usecase

import (
	"fmt"
	"time"

	"snowday/internal/domain/entity"
	"snowday/internal/localedate"
	"snowday/internal/logger"
	"snowday/internal/page"

	"golang.org/x/text/language"
)

const DateHeadingID = "date-heading"

// DateAnnouncer appends the current (or next) date in loc to the page heading.
type DateAnnouncer struct {
	now        func() time.Time
	loc        *time.Location
	offsetDays int
	log        logger.Logger
}

// NewDateAnnouncer builds an announcer for the calendar of loc. A nil loc
// means the process timezone.
func NewDateAnnouncer(offsetDays int, loc *time.Location, log logger.Logger) *DateAnnouncer {
	if loc == nil {
		loc = time.Local
	}
	return &DateAnnouncer{
		now:        time.Now,
		loc:        loc,
		offsetDays: offsetDays,
		log:        log.With(map[string]interface{}{"component": "date_announcer", "timezone": loc.String()}),
	}
}

// WithClock swaps the time source.
func (a *DateAnnouncer) WithClock(now func() time.Time) *DateAnnouncer {
	a.now = now
	return a
}

// Date returns the formatted date the announcer would append.
func (a *DateAnnouncer) Date(tag language.Tag) string {
	day := localedate.AddDays(a.now().In(a.loc), a.offsetDays)
	return localedate.FormatShort(day, tag)
}

// Announce appends the date to the heading element. A missing heading is
// logged and otherwise ignored.
func (a *DateAnnouncer) Announce(doc *page.Document, tag language.Tag) {
	heading := doc.ElementByID(DateHeadingID)
	if heading == nil {
		a.log.WithError(fmt.Errorf("%w: %s", entity.ErrElementNotFound, DateHeadingID)).
			Error("date heading element not found", map[string]interface{}{"element_id": DateHeadingID})
		return
	}
	heading.AppendText(a.Date(tag))
}
