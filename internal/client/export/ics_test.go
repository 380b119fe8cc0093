package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

func TestWriteICS(t *testing.T) {
	events := []models.Event{
		{ID: "e1", Title: "Launch Party", Description: "Bring friends", Date: models.MustParseDate("2024-05-01"), Venue: "Hall A"},
		{ID: "e2", Title: "Expo", Date: models.MustParseDate("2024-12-31")},
	}
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, events, now))

	cal, err := ical.ParseCalendar(&buf)
	require.NoError(t, err)

	got := cal.Events()
	require.Len(t, got, 2)

	prop := func(ve *ical.VEvent, p ical.ComponentProperty) string {
		if v := ve.GetProperty(p); v != nil {
			return v.Value
		}
		return ""
	}

	assert.Equal(t, "e1", prop(got[0], ical.ComponentPropertyUniqueId))
	assert.Equal(t, "Launch Party", prop(got[0], ical.ComponentPropertySummary))
	assert.Equal(t, "Bring friends", prop(got[0], ical.ComponentPropertyDescription))
	assert.Equal(t, "Hall A", prop(got[0], ical.ComponentPropertyLocation))
	assert.Equal(t, "20240501", prop(got[0], ical.ComponentPropertyDtStart))
	assert.Equal(t, "20240502", prop(got[0], ical.ComponentPropertyDtEnd))

	assert.Equal(t, "e2", prop(got[1], ical.ComponentPropertyUniqueId))
	assert.Equal(t, "20241231", prop(got[1], ical.ComponentPropertyDtStart))
	assert.Equal(t, "20250101", prop(got[1], ical.ComponentPropertyDtEnd))
	assert.Empty(t, prop(got[1], ical.ComponentPropertyLocation))
}

func TestWriteICS_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteICS(&buf, nil, time.Now()))
	assert.Contains(t, buf.String(), "BEGIN:VCALENDAR")
	assert.NotContains(t, buf.String(), "BEGIN:VEVENT")
}

func TestWriteICS_MissingID(t *testing.T) {
	var buf bytes.Buffer
	err := WriteICS(&buf, []models.Event{{Title: "orphan"}}, time.Now())
	assert.ErrorContains(t, err, "orphan")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteICS_WriteError(t *testing.T) {
	err := WriteICS(failingWriter{}, []models.Event{{ID: "e1", Title: "x"}}, time.Now())
	assert.ErrorContains(t, err, "disk full")
}
