package search

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []models.Event {
	return []models.Event{
		{ID: "e1", Title: "Launch Party", Date: models.MustParseDate("2024-05-01"), Venue: "Hall A"},
		{ID: "e2", Title: "Product launch", Date: models.MustParseDate("2024-06-10"), Venue: "Hall B"},
		{ID: "e3", Title: "Expo", Date: models.MustParseDate("2024-05-01"), Venue: "Hall C"},
		{ID: "e4", Title: "Team Meetup", Date: models.MustParseDate("2024-07-04"), Venue: "Hall D"},
	}
}

func ids(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		q    Query
		want []string
	}{
		{"empty query is identity", Query{}, []string{"e1", "e2", "e3", "e4"}},
		{"title is case-insensitive", Query{Title: "launch"}, []string{"e1", "e2"}},
		{"title upper case", Query{Title: "PARTY"}, []string{"e1"}},
		{"date only", Query{Date: models.MustParseDate("2024-05-01")}, []string{"e1", "e3"}},
		{"title and date", Query{Title: "launch", Date: models.MustParseDate("2024-05-01")}, []string{"e1"}},
		{"no match", Query{Title: "concert"}, []string{}},
		{"date no match", Query{Date: models.MustParseDate("2030-01-01")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(sample(), tt.q)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_DateAcrossEncodings(t *testing.T) {
	var e models.Event
	require.NoError(t, e.UnmarshalJSON([]byte(`{"_id":"x","title":"T","date":"2024-05-01T23:30:00.000Z"}`)))

	q := Query{Date: models.MustParseDate("2024-05-01")}
	assert.True(t, Match(e, q))

	q.Date = models.MustParseDate("2024-05-02")
	assert.False(t, Match(e, q))
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	in := sample()
	out := Filter(in, Query{})
	require.Len(t, out, len(in))

	out[0].Title = "changed"
	assert.Equal(t, "Launch Party", in[0].Title)
}

func TestFilter_NilInput(t *testing.T) {
	out := Filter(nil, Query{Title: "x"})
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestQuery_IsZero(t *testing.T) {
	assert.True(t, Query{}.IsZero())
	assert.False(t, Query{Title: "a"}.IsZero())
	assert.False(t, Query{Date: models.MustParseDate("2024-01-01")}.IsZero())
}

// Randomized check: the result is an order-preserving subset of the input
// and every kept element matches while every dropped one does not.
func TestFilter_SubsetProperty(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	words := []string{"Launch", "party", "EXPO", "gala", "Meetup", "launch"}

	for i := 0; i < 200; i++ {
		n := r.Intn(12)
		events := make([]models.Event, 0, n)
		for j := 0; j < n; j++ {
			events = append(events, models.Event{
				ID:    fmt.Sprintf("e%d", j),
				Title: words[r.Intn(len(words))] + " " + words[r.Intn(len(words))],
				Date:  models.Date{Year: 2024, Month: 5, Day: 1 + r.Intn(3)},
			})
		}

		q := Query{}
		if r.Intn(2) == 0 {
			q.Title = words[r.Intn(len(words))]
		}
		if r.Intn(2) == 0 {
			q.Date = models.Date{Year: 2024, Month: 5, Day: 1 + r.Intn(3)}
		}

		got := Filter(events, q)

		k := 0
		for _, e := range events {
			if Match(e, q) {
				require.Less(t, k, len(got))
				assert.Equal(t, e, got[k])
				k++
			}
		}
		assert.Equal(t, k, len(got))
	}
}
