// Package search narrows an event list by title substring and date.
package search

import (
	"strings"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"golang.org/x/text/cases"
)

// Query is the active filter. A zero field does not constrain.
type Query struct {
	Title string
	Date  models.Date
}

// IsZero reports whether q matches everything.
func (q Query) IsZero() bool {
	return q.Title == "" && q.Date.IsZero()
}

var fold = cases.Fold()

// Match reports whether e satisfies q. Titles are compared case-insensitively
// by substring; dates by calendar day.
func Match(e models.Event, q Query) bool {
	if q.Title != "" {
		if !strings.Contains(fold.String(e.Title), fold.String(q.Title)) {
			return false
		}
	}
	if !q.Date.IsZero() && !e.Date.Equal(q.Date) {
		return false
	}
	return true
}

// Filter returns the events matching q, preserving order. The input is not
// modified and the result never aliases it.
func Filter(events []models.Event, q Query) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if Match(e, q) {
			out = append(out, e)
		}
	}
	return out
}
