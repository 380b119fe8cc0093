package services

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) ([]byte, bool) {
	t.Helper()
	var v []byte
	err := db.QueryRow(`SELECT value FROM metadata WHERE key=?`, k).Scan(&v)
	if err == sql.ErrNoRows {
		return nil, false
	}
	require.NoError(t, err)
	return v, true
}

// fakeAuthAPI is a scripted client.AuthAPI.
type fakeAuthAPI struct {
	LoginPayload []byte
	LoginErr     error
	RegisterErr  error

	LastEmail    string
	LastPassword []byte
	LastName     string
}

func (f *fakeAuthAPI) Login(_ context.Context, email string, password []byte) (*models.Session, error) {
	f.LastEmail, f.LastPassword = email, password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return models.NewSession(f.LoginPayload)
}

func (f *fakeAuthAPI) Register(_ context.Context, name string, email string, password []byte) error {
	f.LastName, f.LastEmail, f.LastPassword = name, email, password
	return f.RegisterErr
}

// staticToken is a TokenSource with a fixed token.
type staticToken string

func (s staticToken) Token(context.Context) string { return string(s) }

// fakeStore is an in-memory client.EventStore that enforces bearer auth on
// writes. A non-nil listHook replaces ListEvents.
type fakeStore struct {
	mu       sync.Mutex
	events   []models.Event
	token    string
	nextID   int
	listErr  error
	listHook func(ctx context.Context) ([]models.Event, error)

	Calls      []string
	LastTokens []string
}

func (f *fakeStore) record(call, token string) {
	f.Calls = append(f.Calls, call)
	f.LastTokens = append(f.LastTokens, token)
}

func (f *fakeStore) ListEvents(ctx context.Context) ([]models.Event, error) {
	if f.listHook != nil {
		return f.listHook(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("list", "")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Event(nil), f.events...), nil
}

func (f *fakeStore) GetEvent(_ context.Context, id string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("get", "")
	for _, e := range f.events {
		if e.ID == id {
			e := e
			return &e, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeStore) CreateEvent(_ context.Context, token string, fields models.EventFields) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create", token)
	if token == "" || token != f.token {
		return nil, client.ErrUnauthorized
	}
	f.nextID++
	e := models.Event{ID: fmt.Sprintf("new%d", f.nextID), Title: fields.Title, Description: fields.Description, Date: fields.Date, Venue: fields.Venue}
	f.events = append(f.events, e)
	return &e, nil
}

func (f *fakeStore) UpdateEvent(_ context.Context, token string, id string, fields models.EventFields) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update", token)
	if token == "" || token != f.token {
		return nil, client.ErrUnauthorized
	}
	for i := range f.events {
		if f.events[i].ID == id {
			f.events[i] = models.Event{ID: id, Title: fields.Title, Description: fields.Description, Date: fields.Date, Venue: fields.Venue}
			e := f.events[i]
			return &e, nil
		}
	}
	return nil, client.ErrNotFound
}

func (f *fakeStore) DeleteEvent(_ context.Context, token string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete", token)
	if token == "" || token != f.token {
		return client.ErrUnauthorized
	}
	for i := range f.events {
		if f.events[i].ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return nil
		}
	}
	return client.ErrNotFound
}

// fakeChannel hands out fakeSubscriptions and counts them.
type fakeChannel struct {
	mu   sync.Mutex
	subs []*fakeSubscription
	err  error
}

func (c *fakeChannel) Subscribe(context.Context) (client.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	s := &fakeSubscription{ch: make(chan models.Notification, 16)}
	c.subs = append(c.subs, s)
	return s, nil
}

func (c *fakeChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

func (c *fakeChannel) last() *fakeSubscription {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subs[len(c.subs)-1]
}

type fakeSubscription struct {
	ch     chan models.Notification
	once   sync.Once
	closed bool
	err    error
}

func (s *fakeSubscription) send(msg string) {
	s.ch <- models.Notification{Message: msg}
}

// drop simulates the server going away.
func (s *fakeSubscription) drop(err error) {
	s.err = err
	s.once.Do(func() { close(s.ch) })
}

func (s *fakeSubscription) Messages() <-chan models.Notification { return s.ch }
func (s *fakeSubscription) Err() error                           { return s.err }

func (s *fakeSubscription) Close() error {
	s.once.Do(func() {
		s.closed = true
		close(s.ch)
	})
	return nil
}
