// Package export renders events for other tools.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

const productID = "-//eventdesk//admin client//EN"

// WriteICS writes events as an iCalendar document with one all-day VEVENT
// per event. now stamps DTSTAMP.
func WriteICS(w io.Writer, events []models.Event, now time.Time) error {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)

	for _, e := range events {
		if e.ID == "" {
			return fmt.Errorf("export: event %q has no id", e.Title)
		}
		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(now.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Venue != "" {
			ve.SetLocation(e.Venue)
		}
		if !e.Date.IsZero() {
			start := e.Date.Time()
			ve.SetAllDayStartAt(start)
			ve.SetAllDayEndAt(start.AddDate(0, 0, 1))
		}
	}

	if _, err := io.WriteString(w, cal.Serialize()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
