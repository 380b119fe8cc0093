package services

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dmitrijs2005/eventdesk/internal/client/client"
	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
)

// AckPolicy decides when buffered notifications count as read.
type AckPolicy string

const (
	// AckOnDismiss keeps messages until the admin dismisses them.
	AckOnDismiss AckPolicy = "dismiss"
	// AckOnOpen drops messages as soon as the popup is opened.
	AckOnOpen AckPolicy = "open"
)

func ParseAckPolicy(s string) (AckPolicy, error) {
	switch p := AckPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return AckOnDismiss, nil
	case AckOnDismiss, AckOnOpen:
		return p, nil
	default:
		return "", fmt.Errorf("unknown notification ack policy %q", s)
	}
}

// NotificationService buffers booking notifications from the push channel.
//
// The buffer only grows by appends from the channel and keeps arrival order.
// Toggle and Dismiss take the same lock as appends, so a message arriving
// mid-toggle is either in the returned snapshot or still unread afterwards.
type NotificationService interface {
	Start(ctx context.Context) error
	Stop() error
	Running() bool

	Unread() int
	Messages() []models.Notification
	Visible() bool
	Toggle() (bool, []models.Notification)
	Dismiss()

	OnMessage(fn func(n models.Notification, unread int))
}

type notificationService struct {
	channel client.Channel
	policy  AckPolicy
	log     logging.Logger

	life sync.Mutex
	sub  client.Subscription
	done chan struct{}

	mu        sync.Mutex
	buf       []models.Notification
	visible   bool
	onMessage func(models.Notification, int)
}

func NewNotificationService(channel client.Channel, policy AckPolicy, log logging.Logger) NotificationService {
	if policy == "" {
		policy = AckOnDismiss
	}
	return &notificationService{channel: channel, policy: policy, log: log.With("component", "notifications")}
}

// Start subscribes to the channel. It is a no-op while a subscription is
// live; a subscription the server has dropped is replaced.
func (s *notificationService) Start(ctx context.Context) error {
	s.life.Lock()
	defer s.life.Unlock()

	if s.sub != nil {
		select {
		case <-s.done:
			_ = s.sub.Close()
			s.sub = nil
		default:
			return nil
		}
	}

	sub, err := s.channel.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("notifications: %w", err)
	}
	s.sub = sub
	s.done = make(chan struct{})
	go s.pump(sub, s.done)
	return nil
}

// Stop closes the subscription and waits until no more messages are applied.
func (s *notificationService) Stop() error {
	s.life.Lock()
	defer s.life.Unlock()

	if s.sub == nil {
		return nil
	}
	err := s.sub.Close()
	<-s.done
	s.sub = nil
	return err
}

func (s *notificationService) Running() bool {
	s.life.Lock()
	defer s.life.Unlock()
	if s.sub == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

func (s *notificationService) pump(sub client.Subscription, done chan struct{}) {
	defer close(done)

	for n := range sub.Messages() {
		notificationsReceived.Inc()

		s.mu.Lock()
		s.buf = append(s.buf, n)
		unread := len(s.buf)
		fn := s.onMessage
		s.mu.Unlock()

		if fn != nil {
			fn(n, unread)
		}
	}

	if err := sub.Err(); err != nil {
		s.log.Warn(context.Background(), "notification stream ended", "error", err)
	}
}

func (s *notificationService) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

func (s *notificationService) Messages() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.buf)
}

func (s *notificationService) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Toggle flips popup visibility. When it opens, the buffered messages are
// returned; under AckOnOpen they are also cleared.
func (s *notificationService) Toggle() (bool, []models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.visible = !s.visible
	if !s.visible {
		return false, nil
	}

	shown := slices.Clone(s.buf)
	if s.policy == AckOnOpen {
		s.buf = nil
	}
	return true, shown
}

// Dismiss clears the buffer and hides the popup.
func (s *notificationService) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = nil
	s.visible = false
}

func (s *notificationService) OnMessage(fn func(n models.Notification, unread int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onMessage = fn
}
