package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/eventdesk/internal/client/models"
	"github.com/dmitrijs2005/eventdesk/internal/common"
	"github.com/dmitrijs2005/eventdesk/internal/logging"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// RESTClient implements Client over HTTP/JSON.
type RESTClient struct {
	http *resty.Client
	log  logging.Logger
}

// NewRESTClient returns a client for the API rooted at baseURL
// (for example "http://localhost:5000/api").
func NewRESTClient(baseURL string, timeout time.Duration, log logging.Logger) *RESTClient {
	c := &RESTClient{log: log.With("component", "rest")}

	c.http = resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{log: c.log}).
		OnBeforeRequest(c.stampRequest).
		OnAfterResponse(c.logResponse)

	return c
}

func (c *RESTClient) stampRequest(_ *resty.Client, r *resty.Request) error {
	r.SetHeader(common.RequestIDHeaderName, uuid.NewString())
	return nil
}

func (c *RESTClient) logResponse(_ *resty.Client, r *resty.Response) error {
	c.log.Debug(r.Request.Context(), "http response",
		"method", r.Request.Method,
		"url", r.Request.URL,
		"status", r.StatusCode(),
		"request_id", r.Request.Header.Get(common.RequestIDHeaderName),
		"elapsed", r.Time(),
	)
	return nil
}

func (c *RESTClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/events")
	if err := c.mapError("list events", resp, err, http.StatusOK); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0)
	if err := json.Unmarshal(resp.Body(), &events); err != nil {
		return nil, fmt.Errorf("list events: decode: %w", err)
	}
	for _, e := range events {
		if e.RawDate != "" {
			c.log.Warn(ctx, "event has an unreadable date", "id", e.ID, "date", e.RawDate)
		}
	}
	return events, nil
}

func (c *RESTClient) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", id).
		Get("/events/{id}")
	if err := c.mapError("get event", resp, err, http.StatusOK); err != nil {
		return nil, err
	}
	return decodeEvent("get event", resp.Body())
}

func (c *RESTClient) CreateEvent(ctx context.Context, token string, fields models.EventFields) (*models.Event, error) {
	resp, err := c.authorized(ctx, token).
		SetBody(fields).
		Post("/events")
	if err := c.mapError("create event", resp, err, http.StatusOK, http.StatusCreated); err != nil {
		return nil, err
	}
	return decodeEvent("create event", resp.Body())
}

func (c *RESTClient) UpdateEvent(ctx context.Context, token string, id string, fields models.EventFields) (*models.Event, error) {
	resp, err := c.authorized(ctx, token).
		SetPathParam("id", id).
		SetBody(fields).
		Put("/events/{id}")
	if err := c.mapError("update event", resp, err, http.StatusOK); err != nil {
		return nil, err
	}
	return decodeEvent("update event", resp.Body())
}

func (c *RESTClient) DeleteEvent(ctx context.Context, token string, id string) error {
	resp, err := c.authorized(ctx, token).
		SetPathParam("id", id).
		Delete("/events/{id}")
	return c.mapError("delete event", resp, err, http.StatusOK, http.StatusNoContent)
}

func (c *RESTClient) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.Credentials{Email: email, Password: string(password)}).
		Post("/admin/login")
	if err := c.mapError("login", resp, err, http.StatusOK); err != nil {
		return nil, err
	}
	s, err := models.NewSession(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return s, nil
}

func (c *RESTClient) Register(ctx context.Context, name string, email string, password []byte) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(models.Credentials{Name: name, Email: email, Password: string(password)}).
		Post("/admin/register")
	return c.mapError("register", resp, err, http.StatusOK, http.StatusCreated)
}

func (c *RESTClient) authorized(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// decodeEvent tolerates an empty body: some stores answer writes with no content.
func decodeEvent(op string, body []byte) (*models.Event, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	var e models.Event
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return &e, nil
}

// mapError turns a transport error or an unexpected status into one of the
// package sentinel errors.
func (c *RESTClient) mapError(op string, resp *resty.Response, err error, ok ...int) error {
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
	}

	code := resp.StatusCode()
	for _, s := range ok {
		if code == s {
			return nil
		}
	}

	var sentinel error
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		sentinel = ErrUnauthorized
	case code == http.StatusNotFound:
		sentinel = ErrNotFound
	case code == http.StatusBadRequest || code == http.StatusConflict || code == http.StatusUnprocessableEntity:
		sentinel = ErrRejected
	case code >= 500:
		sentinel = ErrUnavailable
	default:
		sentinel = ErrUnexpectedStatus
	}
	return fmt.Errorf("%s: %w (status %d: %s)", op, sentinel, code, serverMessage(resp.Body()))
}

// serverMessage extracts {"message": ...} or {"error": ...} from an error
// body, falling back to the raw text.
func serverMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Error != "" {
			return e.Error
		}
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

// restyLogger routes resty's own diagnostics into our logger.
type restyLogger struct {
	log logging.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}
