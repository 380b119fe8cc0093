package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

// BookingEvent is the push event name carrying booking notifications.
const BookingEvent = "newBooking"

const messageBuffer = 16

// WSChannel implements Channel over a WebSocket connection.
type WSChannel struct {
	url string
	log logging.Logger
	now func() time.Time
}

func NewWSChannel(url string, log logging.Logger) *WSChannel {
	return &WSChannel{url: url, log: log.With("component", "push"), now: time.Now}
}

// Subscribe dials the push endpoint. The returned subscription lives until
// Close is called or the server drops the connection; ctx bounds only the
// handshake.
func (c *WSChannel) Subscribe(ctx context.Context) (Subscription, error) {
	conn, br, _, err := ws.Dial(ctx, c.url)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w: %v", ErrUnavailable, err)
	}

	// br is non-nil when the server sent frames along with the handshake
	// response; those bytes must be read before the raw conn.
	var r io.Reader = conn
	if br != nil {
		r = br
	}

	s := &wsSubscription{
		conn:     conn,
		br:       br,
		put:      ws.PutReader,
		rw:       struct{ io.Reader; io.Writer }{r, conn},
		messages: make(chan models.Notification, messageBuffer),
		done:     make(chan struct{}),
		log:      c.log,
		now:      c.now,
	}
	s.wg.Add(1)
	go s.read()

	c.log.Info(ctx, "subscribed to push channel", "url", c.url)
	return s, nil
}

type envelope struct {
	Event string `json:"event"`
	Data  struct {
		Message string `json:"message"`
	} `json:"data"`
}

type wsSubscription struct {
	conn     net.Conn
	br       *bufio.Reader
	put      func(*bufio.Reader)
	rw       io.ReadWriter
	messages chan models.Notification
	done     chan struct{}
	log      logging.Logger
	now      func() time.Time

	wg        sync.WaitGroup
	closeOnce sync.Once

	mu  sync.Mutex
	err error
}

func (s *wsSubscription) Messages() <-chan models.Notification { return s.messages }

func (s *wsSubscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close is idempotent and waits for the reader to stop.
func (s *wsSubscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	s.wg.Wait()
	return err
}

func (s *wsSubscription) read() {
	defer s.wg.Done()
	defer close(s.messages)
	defer s.release()

	for {
		data, op, err := wsutil.ReadServerData(s.rw)
		if err != nil {
			s.fail(err)
			return
		}
		if op != ws.OpText {
			continue
		}

		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			s.log.Warn(context.Background(), "skipping malformed push frame", "error", err)
			continue
		}
		if env.Event != BookingEvent {
			continue
		}

		n := models.Notification{Message: env.Data.Message, ReceivedAt: s.now()}
		select {
		case s.messages <- n:
		case <-s.done:
			return
		}
	}
}

func (s *wsSubscription) release() {
	if s.br != nil {
		s.put(s.br)
		s.br = nil
	}
}

func (s *wsSubscription) fail(err error) {
	select {
	case <-s.done:
		return
	default:
	}

	var closed wsutil.ClosedError
	if errors.As(err, &closed) || errors.Is(err, io.EOF) {
		err = ErrChannelClosed
	} else {
		err = fmt.Errorf("%w: %v", ErrChannelClosed, err)
	}

	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.log.Warn(context.Background(), "push channel dropped", "error", err)
}
