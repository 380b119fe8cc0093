// Package models defines the event, session and notification types shared by
// the eventdesk client layers.
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/eventdesk/internal/common"
)

// Event is a bookable entity owned by the remote store. ID is assigned by
// the store and never changes.
type Event struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
	Venue       string `json:"venue"`

	// RawDate keeps a stored date that is not a calendar day. Date is zero
	// in that case.
	RawDate string `json:"-"`
}

// UnmarshalJSON accepts the identifier under either "_id" or "id". A date
// that does not parse leaves Date zero and is kept in RawDate, so one bad
// record does not fail a whole list.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	var aux struct {
		plain
		AltID string          `json:"id"`
		Date  json.RawMessage `json:"date"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Event(aux.plain)
	if e.ID == "" {
		e.ID = aux.AltID
	}
	if len(aux.Date) > 0 {
		if err := e.Date.UnmarshalJSON(aux.Date); err != nil {
			e.Date = Date{}
			e.RawDate = rawDateText(aux.Date)
		}
	}
	return nil
}

func rawDateText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// DisplayDate is the date as shown to the user: the calendar day, or the
// stored text when it could not be read.
func (e Event) DisplayDate() string {
	if e.Date.IsZero() && e.RawDate != "" {
		return e.RawDate
	}
	return e.Date.String()
}

// Fields returns the mutable part of e, e.g. to prefill an edit form.
func (e Event) Fields() EventFields {
	return EventFields{
		Title:       e.Title,
		Description: e.Description,
		Date:        e.Date,
		Venue:       e.Venue,
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s  %s  %-10s  %s", e.ID, e.Title, e.DisplayDate(), e.Venue)
}

// EventFields is the payload of create and update requests.
type EventFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
	Venue       string `json:"venue"`
}

// Validate reports the first empty required field as common.ErrValidation.
func (f EventFields) Validate() error {
	switch {
	case strings.TrimSpace(f.Title) == "":
		return fmt.Errorf("%w: title is required", common.ErrValidation)
	case strings.TrimSpace(f.Description) == "":
		return fmt.Errorf("%w: description is required", common.ErrValidation)
	case f.Date.IsZero():
		return fmt.Errorf("%w: date is required", common.ErrValidation)
	case strings.TrimSpace(f.Venue) == "":
		return fmt.Errorf("%w: venue is required", common.ErrValidation)
	}
	return nil
}
