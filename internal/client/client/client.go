package client

import (
	"context"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
)

// EventStore is the remote owner of event records.
//
// Mutating calls take the bearer token explicitly. An empty token is still
// sent (without an Authorization header) so the store, not the client,
// decides whether the request is allowed.
type EventStore interface {
	ListEvents(ctx context.Context) ([]models.Event, error)
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	CreateEvent(ctx context.Context, token string, fields models.EventFields) (*models.Event, error)
	UpdateEvent(ctx context.Context, token string, id string, fields models.EventFields) (*models.Event, error)
	DeleteEvent(ctx context.Context, token string, id string) error
}

// AuthAPI issues admin credentials.
type AuthAPI interface {
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Register(ctx context.Context, name string, email string, password []byte) error
}

// Client is the full REST surface of the backend.
type Client interface {
	EventStore
	AuthAPI
}

// Channel is a push connection emitting booking notifications.
type Channel interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription is a live channel subscription. Messages is closed when the
// subscription ends; Err then reports why (nil after Close).
type Subscription interface {
	Messages() <-chan models.Notification
	Err() error
	Close() error
}
