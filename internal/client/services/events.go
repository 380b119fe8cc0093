package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/client/search"
	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

// ConfirmFunc asks the user whether the event with the given id may be
// deleted.
type ConfirmFunc func(id string) bool

// EventService caches the remote event list and derives the filtered view.
//
// Mutations write through to the store and then refresh; the cache is never
// edited locally. Refreshes may overlap: each takes a generation number and a
// result older than the last applied one is dropped.
type EventService interface {
	Refresh(ctx context.Context) error
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, fields models.EventFields) (*models.Event, error)
	Update(ctx context.Context, id string, fields models.EventFields) (*models.Event, error)
	Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error)

	SetQuery(q search.Query)
	SetTitle(title string)
	SetDate(d models.Date)
	Query() search.Query

	Events() []models.Event
	View() []models.Event

	// Reset empties the cache and the query and discards refreshes still in
	// flight, so nothing from a previous session is shown to the next one.
	Reset()
}

type eventService struct {
	store  client.EventStore
	tokens TokenSource
	log    logging.Logger

	mu      sync.Mutex
	events  []models.Event
	view    []models.Event
	query   search.Query
	issued  uint64
	applied uint64
}

func NewEventService(store client.EventStore, tokens TokenSource, log logging.Logger) EventService {
	return &eventService{
		store:  store,
		tokens: tokens,
		log:    log.With("component", "events"),
		events: []models.Event{},
		view:   []models.Event{},
	}
}

// Refresh replaces the cache with the store's current list. On failure the
// previous cache stays in place.
func (s *eventService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	gen := s.issued
	s.mu.Unlock()

	events, err := s.store.ListEvents(ctx)
	if err != nil {
		refreshTotal.WithLabelValues(outcomeError).Inc()
		s.log.Warn(ctx, "refresh failed, keeping cached events", "generation", gen, "error", err)
		return fmt.Errorf("refresh: %w", err)
	}

	s.mu.Lock()
	if gen < s.applied {
		s.mu.Unlock()
		refreshTotal.WithLabelValues(outcomeSuperseded).Inc()
		s.log.Debug(ctx, "discarding superseded refresh", "generation", gen)
		return nil
	}
	s.applied = gen
	s.events = events
	s.view = search.Filter(events, s.query)
	n, shown := len(s.events), len(s.view)
	s.mu.Unlock()

	refreshTotal.WithLabelValues(outcomeOK).Inc()
	s.log.Debug(ctx, "events refreshed", "generation", gen, "count", n, "shown", shown)
	return nil
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	e, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get event %s: %w", id, err)
	}
	return e, nil
}

func (s *eventService) Create(ctx context.Context, fields models.EventFields) (*models.Event, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.CreateEvent(ctx, s.tokens.Token(ctx), fields)
	mutationsTotal.WithLabelValues("create", outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.refreshAfter(ctx, "create")
	return e, nil
}

func (s *eventService) Update(ctx context.Context, id string, fields models.EventFields) (*models.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	e, err := s.store.UpdateEvent(ctx, s.tokens.Token(ctx), id, fields)
	mutationsTotal.WithLabelValues("update", outcome(err)).Inc()
	if err != nil {
		return nil, fmt.Errorf("update event %s: %w", id, err)
	}

	s.refreshAfter(ctx, "update")
	return e, nil
}

// Delete asks confirm first and reports whether the event was deleted.
// A nil confirm is refused.
func (s *eventService) Delete(ctx context.Context, id string, confirm ConfirmFunc) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%w: id is required", common.ErrValidation)
	}
	if confirm == nil {
		return false, common.ErrConfirmationRequired
	}
	if !confirm(id) {
		return false, nil
	}

	err := s.store.DeleteEvent(ctx, s.tokens.Token(ctx), id)
	mutationsTotal.WithLabelValues("delete", outcome(err)).Inc()
	if err != nil {
		return false, fmt.Errorf("delete event %s: %w", id, err)
	}

	s.refreshAfter(ctx, "delete")
	return true, nil
}

// refreshAfter reloads the cache once a mutation has been accepted. The
// mutation stands even if the reload fails.
func (s *eventService) refreshAfter(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		s.log.Warn(ctx, "event list is stale after mutation", "op", op, "error", err)
	}
}

func (s *eventService) SetQuery(q search.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
	s.view = search.Filter(s.events, q)
}

func (s *eventService) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Title = title
	s.view = search.Filter(s.events, s.query)
}

func (s *eventService) SetDate(d models.Date) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Date = d
	s.view = search.Filter(s.events, s.query)
}

func (s *eventService) Query() search.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *eventService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.applied = s.issued
	s.events = []models.Event{}
	s.view = []models.Event{}
	s.query = search.Query{}
}

func (s *eventService) Events() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

func (s *eventService) View() []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.view)
}
